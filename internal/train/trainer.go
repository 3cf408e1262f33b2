// Package train runs mini-batch gradient descent over a labeled dataset.
//
// A Trainer owns nothing but its bookkeeping: the model, optimizer, loss and
// datasets are injected. Each epoch shuffles the (optionally limited) train
// set, walks it in batches, averages per-sample gradients over the batch and
// calls the optimizer once per batch. After the epoch the model is evaluated
// with forward passes only.
//
// Example:
//
//	model := nn.NewMLP([]int{784, 128, 10}, nn.ReLU, true)
//	model.Build(rng)
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	trainer := train.New(model, sgd, nn.NewCrossEntropyLoss(), trainSet, testSet, train.Config{
//	    Epochs:    10,
//	    BatchSize: 32,
//	    Rand:      rng,
//	})
//	history, err := trainer.Run()
package train

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/born-ml/feedforward/internal/dataset"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
)

// DefaultLogEvery is the progress cadence, in batches, when Config.LogEvery
// is not set.
const DefaultLogEvery = 100

// Config holds the training loop settings.
type Config struct {
	Epochs     int  // Number of passes over the train set
	BatchSize  int  // Samples per optimizer step (values below 1 mean 1)
	Verbose    bool // Log batch progress
	TrainLimit int  // Train on at most this many samples (0 = all)
	EvalLimit  int  // Evaluate on at most this many samples (0 = all)
	LogEvery   int  // Log every n-th batch in verbose mode (default: DefaultLogEvery)

	// Rand drives the per-epoch shuffle. A time-seeded source is used when nil.
	Rand *rand.Rand

	// Logger receives progress lines. Defaults to log.Default().
	Logger *log.Logger

	// Parallel controls how gradient accumulation is split across goroutines.
	// The zero value accumulates sequentially.
	Parallel parallel.Config
}

// Trainer runs epochs of mini-batch training and evaluation.
type Trainer struct {
	model     *nn.Model
	optimizer optim.Optimizer
	loss      nn.Loss
	trainSet  *dataset.Dataset
	evalSet   *dataset.Dataset
	cfg       Config
	rng       *rand.Rand
	logger    *log.Logger

	epoch int

	// Batch gradient sums, one pair per layer.
	accW [][]float32
	accB [][]float32
}

// batchStats describes one trained batch.
type batchStats struct {
	samples   int
	lossSum   float32
	predicted int
	actual    int
	probs     []float32
}

// New creates a trainer.
//
// Panics if any collaborator is nil or if a dataset's feature count differs
// from the model input size. evalSet may be empty.
func New(model *nn.Model, optimizer optim.Optimizer, loss nn.Loss, trainSet, evalSet *dataset.Dataset, cfg Config) *Trainer {
	if model == nil || optimizer == nil || loss == nil || trainSet == nil || evalSet == nil {
		panic("train.New: model, optimizer, loss and datasets are required")
	}
	if trainSet.NumFeatures != model.InSize() {
		panic(fmt.Sprintf("train.New: train set has %d features, model expects %d", trainSet.NumFeatures, model.InSize()))
	}
	if evalSet.NumSamples > 0 && evalSet.NumFeatures != model.InSize() {
		panic(fmt.Sprintf("train.New: eval set has %d features, model expects %d", evalSet.NumFeatures, model.InSize()))
	}

	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = DefaultLogEvery
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	t := &Trainer{
		model:     model,
		optimizer: optimizer,
		loss:      loss,
		trainSet:  trainSet,
		evalSet:   evalSet,
		cfg:       cfg,
		rng:       rng,
		logger:    logger,
	}
	for _, layer := range model.Layers() {
		t.accW = append(t.accW, make([]float32, layer.Weights().Len()))
		t.accB = append(t.accB, make([]float32, layer.Biases().Len()))
	}
	return t
}

// Epoch returns the number of completed epochs.
func (t *Trainer) Epoch() int {
	return t.epoch
}

// Run trains for Config.Epochs epochs and returns the per-epoch history.
//
// An optimizer error aborts the run; the history up to the failing epoch is
// returned with it.
func (t *Trainer) Run() (*History, error) {
	history := &History{}
	for e := 0; e < t.cfg.Epochs; e++ {
		rec, err := t.RunEpoch()
		if err != nil {
			return history, err
		}
		history.Add(rec)
	}
	return history, nil
}

// RunEpoch trains one epoch over a fresh shuffle of the train set and then
// evaluates the model.
func (t *Trainer) RunEpoch() (Epoch, error) {
	start := time.Now()
	t.epoch++

	n := t.trainSet.NumSamples
	if t.cfg.TrainLimit > 0 {
		n = min(n, t.cfg.TrainLimit)
	}
	batches := Batches(t.rng.Perm(n), t.cfg.BatchSize)

	var lossSum float32
	for i, batch := range batches {
		stats, err := t.trainBatch(batch)
		if err != nil {
			return Epoch{}, fmt.Errorf("epoch %d batch %d/%d: %w", t.epoch, i+1, len(batches), err)
		}
		lossSum += stats.lossSum

		if t.cfg.Verbose && ((i+1)%t.cfg.LogEvery == 0 || i == len(batches)-1) {
			t.logger.Printf("epoch=%d batch=%d/%d loss=%.4f predicted=%d actual=%d probs=%.3f",
				t.epoch, i+1, len(batches), stats.lossSum/float32(stats.samples),
				stats.predicted, stats.actual, stats.probs)
		}
	}

	rec := Epoch{
		Epoch:    t.epoch,
		Accuracy: t.Evaluate(),
		Duration: time.Since(start),
	}
	if n > 0 {
		rec.AvgLoss = lossSum / float32(n)
	}
	t.logger.Printf("epoch=%d avg_loss=%.4f accuracy=%.2f%% duration=%s",
		rec.Epoch, rec.AvgLoss, rec.Accuracy, rec.Duration.Round(time.Millisecond))
	return rec, nil
}

// TrainBatch runs forward and backward passes for the train samples at
// indices, applies the averaged gradients with one optimizer step and
// returns the mean loss of the batch.
//
// Panics if indices is empty or a label is outside the model output range.
func (t *Trainer) TrainBatch(indices []int) (float32, error) {
	stats, err := t.trainBatch(indices)
	if err != nil {
		return 0, err
	}
	return stats.lossSum / float32(stats.samples), nil
}

func (t *Trainer) trainBatch(indices []int) (batchStats, error) {
	if len(indices) == 0 {
		panic("Trainer.TrainBatch: empty batch")
	}
	layers := t.model.Layers()
	for l := range layers {
		clear(t.accW[l])
		clear(t.accB[l])
	}

	var stats batchStats
	for _, k := range indices {
		label := int(t.trainSet.Label(k))
		target := OneHot(label, t.model.OutSize())

		pred := t.model.Forward(t.trainSet.Image(k))
		stats.lossSum += t.loss.Forward(target, pred)
		t.model.Backward(t.loss.Backward(target, pred))

		for l, layer := range layers {
			parallel.Accumulate(t.accW[l], layer.Weights().Grad(), t.cfg.Parallel)
			parallel.Accumulate(t.accB[l], layer.Biases().Grad(), t.cfg.Parallel)
		}

		stats.predicted = ArgMax(pred)
		stats.actual = label
		stats.probs = pred
	}
	stats.samples = len(indices)

	count := float32(stats.samples)
	for l, layer := range layers {
		parallel.Div(t.accW[l], count, t.cfg.Parallel)
		parallel.Div(t.accB[l], count, t.cfg.Parallel)
		layer.Weights().SetGrad(t.accW[l])
		layer.Biases().SetGrad(t.accB[l])
	}

	if err := t.optimizer.Update(t.model); err != nil {
		return stats, fmt.Errorf("%s update: %w", t.optimizer.Name(), err)
	}
	return stats, nil
}

// Evaluate returns the classification accuracy, in percent, over the first
// min(NumSamples, EvalLimit) eval samples. An empty eval set scores 0.
func (t *Trainer) Evaluate() float32 {
	n := t.evalSet.NumSamples
	if t.cfg.EvalLimit > 0 {
		n = min(n, t.cfg.EvalLimit)
	}

	correct := 0
	for k := 0; k < n; k++ {
		if ArgMax(t.model.Forward(t.evalSet.Image(k))) == int(t.evalSet.Label(k)) {
			correct++
		}
	}
	return 100 * float32(correct) / float32(max(1, n))
}

// Batches splits perm into consecutive batches of size elements; the last
// batch holds the remainder. Values of size below 1 mean 1.
func Batches(perm []int, size int) [][]int {
	size = max(1, size)
	batches := make([][]int, 0, (len(perm)+size-1)/size)
	for start := 0; start < len(perm); start += size {
		batches = append(batches, perm[start:min(start+size, len(perm))])
	}
	return batches
}

// OneHot returns a vector of length n with a 1 at label.
//
// Panics if label is outside [0, n).
func OneHot(label, n int) []float32 {
	if label < 0 || label >= n {
		panic(fmt.Sprintf("train.OneHot: label %d out of range [0, %d)", label, n))
	}
	v := make([]float32, n)
	v[label] = 1
	return v
}

// ArgMax returns the index of the largest element, the first on ties, or -1
// for an empty vector.
func ArgMax(v []float32) int {
	best := -1
	for i, x := range v {
		if best < 0 || x > v[best] {
			best = i
		}
	}
	return best
}
