// Package parallel splits element-wise work over gradient buffers across
// goroutines.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096, // Gradient buffers are small; only large layers split.
	}
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Accumulate adds src into dst element-wise. Panics on a length mismatch.
func Accumulate(dst, src []float32, cfg Config) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("parallel.Accumulate: length mismatch %d != %d", len(dst), len(src)))
	}
	For(len(dst), func(i int) {
		dst[i] += src[i]
	}, cfg)
}

// Div divides every element of v by d.
func Div(v []float32, d float32, cfg Config) {
	For(len(v), func(i int) {
		v[i] /= d
	}, cfg)
}
