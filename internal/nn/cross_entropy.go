package nn

import (
	"fmt"

	"github.com/chewxy/math32"
)

// CrossEntropyEpsilon bounds predictions away from 0 and 1 before the log.
const CrossEntropyEpsilon = 1e-7

// CrossEntropyLoss computes cross-entropy between a one-hot target and a
// predicted probability vector.
//
// Mathematical Formulation:
//
//	Loss = -Σ_i y_true[i] * ln(clip(y_pred[i]))
//
// Gradient (Backward):
//
//	∂L/∂y_pred[i] = -y_true[i] / clip(y_pred[i])
//
// where clip bounds its argument to [ε, 1-ε] with ε = CrossEntropyEpsilon.
//
// Unlike a fused softmax cross-entropy, this loss expects probabilities
// (the output of a Softmax layer), not logits. The target is expected to be
// one-hot but this is not enforced.
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss()
//	probs := model.Forward(image)
//	loss := criterion.Forward(oneHot, probs)
//	model.Backward(criterion.Backward(oneHot, probs))
type CrossEntropyLoss struct {
	name string
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{name: "cross_entropy"}
}

// Name returns the loss name.
func (c *CrossEntropyLoss) Name() string {
	return c.name
}

// Forward computes the cross-entropy loss.
//
// Parameters:
//   - yTrue: Target distribution, normally one-hot
//   - yPred: Predicted probabilities, same length as yTrue
//
// Returns the scalar loss. Panics if the lengths differ.
func (c *CrossEntropyLoss) Forward(yTrue, yPred []float32) float32 {
	checkSameLength("CrossEntropyLoss.Forward", yTrue, yPred)

	var loss float32
	for i, t := range yTrue {
		loss -= t * math32.Log(clipProbability(yPred[i]))
	}
	return loss
}

// Backward computes the gradient of the loss w.r.t. yPred.
//
// The clipped prediction is recomputed here rather than shared with
// Forward. Panics if the lengths differ.
func (c *CrossEntropyLoss) Backward(yTrue, yPred []float32) []float32 {
	checkSameLength("CrossEntropyLoss.Backward", yTrue, yPred)

	grad := make([]float32, len(yTrue))
	for i, t := range yTrue {
		grad[i] = -t / clipProbability(yPred[i])
	}
	return grad
}

func clipProbability(p float32) float32 {
	return math32.Min(math32.Max(p, CrossEntropyEpsilon), 1-CrossEntropyEpsilon)
}

func checkSameLength(method string, yTrue, yPred []float32) {
	if len(yTrue) != len(yPred) {
		panic(fmt.Sprintf("%s: target has %d values but prediction has %d", method, len(yTrue), len(yPred)))
	}
}
