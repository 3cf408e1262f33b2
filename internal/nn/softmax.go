package nn

import (
	"math/rand"
)

// SoftmaxLayer normalizes its input into a probability distribution.
//
// It has no learnable parameters. Its weight and bias buffers exist only so
// that every layer exposes the same capability set; they stay zero and
// their gradients are always zero, so optimizer updates leave them unchanged.
//
// Example:
//
//	sm := nn.NewSoftmax("softmax_2", 10)
//	probs := sm.Forward(logits) // sums to 1
type SoftmaxLayer struct {
	layerState
}

// NewSoftmax creates a Softmax layer over vectors of the given size.
func NewSoftmax(name string, size int) *SoftmaxLayer {
	return &SoftmaxLayer{layerState: newLayerState(name, size, size, Softmax)}
}

// Build only allocates the placeholder buffers; rng is not consumed.
func (l *SoftmaxLayer) Build(_ *rand.Rand) {
	l.allocate()
}

// Forward computes the numerically stable softmax of input and caches it.
func (l *SoftmaxLayer) Forward(input []float32) []float32 {
	l.checkInput("Forward", input)

	out := SoftmaxFn(input)
	l.lastOutput = append(l.lastOutput[:0], out...)
	l.cached = true
	return out
}

// Backward computes the vector-Jacobian product of the softmax.
//
// With s the cached output and dot = Σ_i gradOutput[i]*s[i]:
//
//	gradIn[j] = s[j] * (gradOutput[j] - dot)
func (l *SoftmaxLayer) Backward(gradOutput []float32) []float32 {
	l.checkGradOutput("Backward", gradOutput)

	s := l.lastOutput
	var dot float32
	for i, g := range gradOutput {
		dot += g * s[i]
	}

	gradIn := make([]float32, l.inSize)
	for j, g := range gradOutput {
		gradIn[j] = s[j] * (g - dot)
	}

	l.weight.ZeroGrad()
	l.bias.ZeroGrad()
	l.cached = false
	return gradIn
}
