package nn

import (
	"math/rand"
)

// InitStdDev is the standard deviation of the initial weight distribution.
const InitStdDev = 0.01

// Normal fills data with independent samples from N(mean, std²).
//
// Parameters:
//   - data: Destination slice
//   - mean: Distribution mean
//   - std: Distribution standard deviation
//   - rng: Random source; pass a seeded source for reproducible runs
func Normal(data []float32, mean, std float64, rng *rand.Rand) {
	for i := range data {
		data[i] = float32(rng.NormFloat64()*std + mean)
	}
}
