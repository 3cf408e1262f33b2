// Package nn implements the layers, model container and loss functions of
// the feed-forward training engine.
//
// This package provides:
//   - Layer interface: Common capability set of every layer
//   - Parameter: Values plus gradient buffer
//   - FullyConnected: Dense layer with identity, ReLU or sigmoid activation
//   - Softmax: Normalizing output layer
//   - Model: Ordered stack of layers
//   - Loss functions: CrossEntropyLoss
//
// Gradients are derived by hand per layer type. Each layer remembers what
// its backward pass needs from the last forward pass, so a layer processes
// exactly one sample at a time: Forward, then Backward, then the next sample.
package nn

import (
	"fmt"
	"math/rand"
)

// Layer is the interface implemented by every layer variant.
//
// A layer maps an input vector of length InSize to an output vector of
// length OutSize. Forward records whatever Backward needs; Backward consumes
// that record, overwrites the gradients of Weights and Biases with the
// gradient for that single sample and returns the gradient w.r.t. the input.
//
// Example:
//
//	fc := nn.NewFullyConnected("layer_0", 784, 128, nn.ReLU)
//	fc.Build(rng)
//
//	out := fc.Forward(x)
//	gradIn := fc.Backward(gradOut)
type Layer interface {
	// Name returns the layer name.
	Name() string

	// InSize returns the expected input length.
	InSize() int

	// OutSize returns the produced output length.
	OutSize() int

	// Activation returns the activation kind of the layer.
	Activation() Activation

	// Forward computes the output for one input vector and caches the
	// intermediate values needed by Backward.
	//
	// Panics if len(input) != InSize().
	Forward(input []float32) []float32

	// Backward computes the gradient w.r.t. the input of the last Forward
	// call and overwrites the parameter gradients with that sample's
	// gradient.
	//
	// Panics if len(gradOutput) != OutSize() or no Forward preceded it.
	Backward(gradOutput []float32) []float32

	// Build allocates parameters with their declared shapes and
	// initializes them from rng.
	Build(rng *rand.Rand)

	// Weights returns the weight matrix [OutSize, InSize], row-major.
	Weights() *Parameter

	// Biases returns the bias vector [OutSize].
	Biases() *Parameter

	// UpdateWeights adds delta element-wise to the weights.
	UpdateWeights(delta []float32)

	// UpdateBiases adds delta element-wise to the biases.
	UpdateBiases(delta []float32)
}

// layerState is the state shared by all layer variants.
type layerState struct {
	name       string
	inSize     int
	outSize    int
	activation Activation
	weight     *Parameter // [outSize, inSize]
	bias       *Parameter // [outSize]

	// Forward cache, valid until the next Backward.
	lastInput  []float32
	lastOutput []float32
	cached     bool
}

func newLayerState(name string, inSize, outSize int, activation Activation) layerState {
	if inSize <= 0 || outSize <= 0 {
		panic(fmt.Sprintf("%s: layer sizes must be positive, got in=%d out=%d", name, inSize, outSize))
	}
	return layerState{
		name:       name,
		inSize:     inSize,
		outSize:    outSize,
		activation: activation,
		weight:     NewParameter(name+".weight", inSize*outSize),
		bias:       NewParameter(name+".bias", outSize),
	}
}

// Name returns the layer name.
func (s *layerState) Name() string {
	return s.name
}

// InSize returns the expected input length.
func (s *layerState) InSize() int {
	return s.inSize
}

// OutSize returns the produced output length.
func (s *layerState) OutSize() int {
	return s.outSize
}

// Activation returns the activation kind.
func (s *layerState) Activation() Activation {
	return s.activation
}

// Weights returns the weight parameter.
func (s *layerState) Weights() *Parameter {
	return s.weight
}

// Biases returns the bias parameter.
func (s *layerState) Biases() *Parameter {
	return s.bias
}

// UpdateWeights adds delta element-wise to the weights.
func (s *layerState) UpdateWeights(delta []float32) {
	s.weight.Add(delta)
}

// UpdateBiases adds delta element-wise to the biases.
func (s *layerState) UpdateBiases(delta []float32) {
	s.bias.Add(delta)
}

// allocate resets parameters to zero with their declared shapes.
func (s *layerState) allocate() {
	s.weight.reset(s.inSize * s.outSize)
	s.bias.reset(s.outSize)
	s.cached = false
}

func (s *layerState) checkInput(method string, input []float32) {
	if len(input) != s.inSize {
		panic(fmt.Sprintf("%s.%s: %s expects input of length %d, got %d", s.kind(), method, s.name, s.inSize, len(input)))
	}
}

func (s *layerState) checkGradOutput(method string, gradOutput []float32) {
	if len(gradOutput) != s.outSize {
		panic(fmt.Sprintf("%s.%s: %s expects gradient of length %d, got %d", s.kind(), method, s.name, s.outSize, len(gradOutput)))
	}
	if !s.cached {
		panic(fmt.Sprintf("%s.%s: %s called without a preceding Forward", s.kind(), method, s.name))
	}
}

func (s *layerState) kind() string {
	if s.activation == Softmax {
		return "Softmax"
	}
	return "FullyConnected"
}
