package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/feedforward/internal/nn"
)

// Finite differences on float32 arithmetic are noisy; 1% relative error
// plus a small absolute floor is the tolerance used throughout.
const (
	fdStep   = 1e-4
	fdRelTol = 1e-2
	fdAbsTol = 1e-3
)

var centralSettings = &fd.Settings{Formula: fd.Central, Step: fdStep}

func toFloat64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func assertGradClose(t *testing.T, numerical []float64, analytic []float32, what string) {
	t.Helper()
	require.Len(t, analytic, len(numerical))
	for i, n := range numerical {
		a := float64(analytic[i])
		tol := fdRelTol*math.Max(math.Abs(a), math.Abs(n)) + fdAbsTol
		assert.InDelta(t, n, a, tol, "%s[%d]: analytic %g numerical %g", what, i, a, n)
	}
}

// TestGradientCheck_FullyConnectedCrossEntropy compares gradW and gradInput
// of a sigmoid layer followed by cross-entropy with central differences.
func TestGradientCheck_FullyConnectedCrossEntropy(t *testing.T) {
	w := []float32{
		0.2, -0.4, 0.1, 0.3,
		-0.3, 0.5, 0.2, -0.1,
		0.4, 0.1, -0.2, 0.25,
	}
	b := []float32{0.05, -0.1, 0.02}
	x := []float32{0.5, -0.3, 0.8, 0.1}
	yTrue := []float32{0, 1, 0}
	fc := fixedFC(t, 4, 3, nn.Sigmoid, w, b)
	criterion := nn.NewCrossEntropyLoss()

	lossAtWeights := func(params []float64) float64 {
		for i, v := range params {
			fc.Weights().Data()[i] = float32(v)
		}
		return float64(criterion.Forward(yTrue, fc.Forward(x)))
	}
	numericalW := fd.Gradient(nil, lossAtWeights, toFloat64(w), centralSettings)
	copy(fc.Weights().Data(), w)

	lossAtInput := func(in []float64) float64 {
		xs := make([]float32, len(in))
		for i, v := range in {
			xs[i] = float32(v)
		}
		return float64(criterion.Forward(yTrue, fc.Forward(xs)))
	}
	numericalX := fd.Gradient(nil, lossAtInput, toFloat64(x), centralSettings)

	pred := fc.Forward(x)
	gradIn := fc.Backward(criterion.Backward(yTrue, pred))

	assertGradClose(t, numericalW, fc.Weights().Grad(), "gradW")
	assertGradClose(t, numericalX, gradIn, "gradInput")
}

// TestGradientCheck_SoftmaxModel compares the gradients of a
// FullyConnected + Softmax + cross-entropy stack with central differences.
func TestGradientCheck_SoftmaxModel(t *testing.T) {
	model := nn.NewMLP([]int{4, 3}, nn.Identity, true)
	model.Build(newRand())
	fc := model.Layers()[0]
	copy(fc.Weights().Data(), []float32{
		0.3, -0.2, 0.1, 0.4,
		-0.1, 0.2, -0.3, 0.05,
		0.25, 0.15, -0.05, -0.2,
	})
	copy(fc.Biases().Data(), []float32{0.1, 0, -0.1})
	x := []float32{1, 0.5, -0.5, 0.25}
	yTrue := []float32{0, 0, 1}
	criterion := nn.NewCrossEntropyLoss()

	w0 := append([]float32(nil), fc.Weights().Data()...)
	b0 := append([]float32(nil), fc.Biases().Data()...)

	lossAtWeights := func(params []float64) float64 {
		for i, v := range params {
			fc.Weights().Data()[i] = float32(v)
		}
		return float64(criterion.Forward(yTrue, model.Forward(x)))
	}
	numericalW := fd.Gradient(nil, lossAtWeights, toFloat64(w0), centralSettings)
	copy(fc.Weights().Data(), w0)

	lossAtBias := func(params []float64) float64 {
		for i, v := range params {
			fc.Biases().Data()[i] = float32(v)
		}
		return float64(criterion.Forward(yTrue, model.Forward(x)))
	}
	numericalB := fd.Gradient(nil, lossAtBias, toFloat64(b0), centralSettings)
	copy(fc.Biases().Data(), b0)

	pred := model.Forward(x)
	model.Backward(criterion.Backward(yTrue, pred))

	assertGradClose(t, numericalW, fc.Weights().Grad(), "gradW")
	assertGradClose(t, numericalB, fc.Biases().Grad(), "gradB")

	// Softmax followed by cross-entropy collapses to p - y on the logits.
	for j, p := range pred {
		assert.InDelta(t, p-yTrue[j], fc.Biases().Grad()[j], 1e-5)
	}
}
