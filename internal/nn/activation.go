package nn

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Activation names the element-wise nonlinearity applied by a layer.
//
// FullyConnected layers accept Identity, ReLU and Sigmoid. Softmax is the
// kind reported by the Softmax layer, which normalizes a whole vector rather
// than individual elements.
type Activation string

// Supported activation kinds.
const (
	Identity Activation = "identity"
	ReLU     Activation = "relu"
	Sigmoid  Activation = "sigmoid"
	Softmax  Activation = "softmax"
)

// ParseActivation converts a configuration string into an Activation.
//
// The empty string maps to Identity. Softmax is rejected because it is a
// layer of its own, not an element-wise activation.
func ParseActivation(s string) (Activation, error) {
	switch Activation(s) {
	case "", Identity:
		return Identity, nil
	case ReLU:
		return ReLU, nil
	case Sigmoid:
		return Sigmoid, nil
	default:
		return "", fmt.Errorf("unknown activation %q (want identity, relu or sigmoid)", s)
	}
}

// IdentityFn returns x unchanged.
func IdentityFn(x float32) float32 {
	return x
}

// ReLUFn computes max(0, x).
func ReLUFn(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

// SigmoidFn computes 1 / (1 + exp(-x)).
func SigmoidFn(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// SoftmaxFn computes a numerically stable softmax of x.
//
// The maximum element is subtracted before exponentiation, so the result is
// unchanged when a constant is added to every input and large logits do not
// overflow.
func SoftmaxFn(x []float32) []float32 {
	maxX := math32.Inf(-1)
	for _, v := range x {
		maxX = math32.Max(maxX, v)
	}

	out := make([]float32, len(x))
	var sum float32
	for i, v := range x {
		out[i] = math32.Exp(v - maxX)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// activationFunc pairs an element-wise function with its derivative.
//
// The derivative takes the activation's output y rather than its input,
// which is all a layer keeps after the forward pass.
type activationFunc struct {
	apply      func(x float32) float32
	derivative func(y float32) float32
}

func bindActivation(kind Activation) activationFunc {
	switch kind {
	case Identity:
		return activationFunc{apply: IdentityFn, derivative: func(float32) float32 { return 1 }}
	case ReLU:
		return activationFunc{apply: ReLUFn, derivative: func(y float32) float32 {
			if y > 0 {
				return 1
			}
			return 0
		}}
	case Sigmoid:
		return activationFunc{apply: SigmoidFn, derivative: func(y float32) float32 { return y * (1 - y) }}
	default:
		panic(fmt.Sprintf("bindActivation: unsupported activation %q", kind))
	}
}
