package nn

import (
	"math/rand"
)

// FullyConnected implements a fully connected (dense) layer.
//
// Performs the transformation: y = act(W·x + b)
// where:
//   - x is the input vector with length in_size
//   - W is the weight matrix with shape [out_size, in_size], row j feeding output j
//   - b is the bias vector with length out_size
//   - act is Identity, ReLU or Sigmoid, applied element-wise
//
// Parameters are zero until Build draws them from N(0, InitStdDev²).
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	layer := nn.NewFullyConnected("layer_0", 784, 128, nn.ReLU)
//	layer.Build(rng)
//
//	output := layer.Forward(input) // len 128
type FullyConnected struct {
	layerState
	act activationFunc
}

// NewFullyConnected creates a new FullyConnected layer with zeroed parameters.
//
// Parameters:
//   - name: Layer name, used as prefix of the parameter names
//   - inSize: Number of input features
//   - outSize: Number of output units
//   - activation: Identity, ReLU or Sigmoid
//
// Panics on non-positive sizes or an unsupported activation.
func NewFullyConnected(name string, inSize, outSize int, activation Activation) *FullyConnected {
	return &FullyConnected{
		layerState: newLayerState(name, inSize, outSize, activation),
		act:        bindActivation(activation),
	}
}

// Build reallocates the parameters, samples them from N(0, InitStdDev²) and
// rebinds the activation function from the stored activation kind.
func (l *FullyConnected) Build(rng *rand.Rand) {
	l.allocate()
	Normal(l.weight.data, 0, InitStdDev, rng)
	Normal(l.bias.data, 0, InitStdDev, rng)
	l.act = bindActivation(l.activation)
}

// Forward computes act(W·x + b) for one input vector.
//
// The input and the post-activation output are cached for Backward. The
// input is copied, so the caller may reuse its buffer.
func (l *FullyConnected) Forward(input []float32) []float32 {
	l.checkInput("Forward", input)

	w := l.weight.data
	b := l.bias.data
	out := make([]float32, l.outSize)
	for j := range out {
		row := w[j*l.inSize : (j+1)*l.inSize]
		sum := b[j]
		for i, x := range input {
			sum += row[i] * x
		}
		out[j] = l.act.apply(sum)
	}

	l.lastInput = append(l.lastInput[:0], input...)
	l.lastOutput = append(l.lastOutput[:0], out...)
	l.cached = true
	return out
}

// Backward computes the gradient w.r.t. the input of the last Forward call.
//
// With ga[j] = gradOutput[j] * act'(y[j]), where y is the cached output:
//   - gradB[j] = ga[j]
//   - gradW[j][i] = ga[j] * x[i]
//   - gradIn[i] = Σ_j ga[j] * W[j][i]
//
// The parameter gradients are overwritten, not accumulated.
func (l *FullyConnected) Backward(gradOutput []float32) []float32 {
	l.checkGradOutput("Backward", gradOutput)

	w := l.weight.data
	gradW := l.weight.grad
	gradB := l.bias.grad
	gradIn := make([]float32, l.inSize)

	for j, g := range gradOutput {
		ga := g * l.act.derivative(l.lastOutput[j])
		gradB[j] = ga

		row := w[j*l.inSize : (j+1)*l.inSize]
		gradRow := gradW[j*l.inSize : (j+1)*l.inSize]
		for i, x := range l.lastInput {
			gradRow[i] = ga * x
			gradIn[i] += ga * row[i]
		}
	}

	l.cached = false
	return gradIn
}
