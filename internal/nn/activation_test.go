package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseActivation tests configuration string parsing.
func TestParseActivation(t *testing.T) {
	cases := map[string]Activation{
		"":         Identity,
		"identity": Identity,
		"relu":     ReLU,
		"sigmoid":  Sigmoid,
	}
	for in, want := range cases {
		got, err := ParseActivation(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseActivation("softmax")
	assert.Error(t, err, "softmax is a layer, not an element-wise activation")
	_, err = ParseActivation("tanh")
	assert.Error(t, err)
}

// TestScalarActivations tests identity, ReLU and sigmoid values.
func TestScalarActivations(t *testing.T) {
	inputs := []float32{-2, -0.5, 0, 0.5, 2}
	for _, x := range inputs {
		assert.Equal(t, x, IdentityFn(x))
		assert.Equal(t, float32(math.Max(0, float64(x))), ReLUFn(x))
		assert.InDelta(t, 1/(1+math.Exp(-float64(x))), SigmoidFn(x), 1e-6)
	}
	assert.Equal(t, float32(0.5), SigmoidFn(0))
}

// TestActivationDerivativeFromOutput tests derivatives expressed through
// the activation output.
func TestActivationDerivativeFromOutput(t *testing.T) {
	id := bindActivation(Identity)
	assert.Equal(t, float32(1), id.derivative(-3))

	relu := bindActivation(ReLU)
	assert.Equal(t, float32(1), relu.derivative(relu.apply(2)))
	assert.Equal(t, float32(0), relu.derivative(relu.apply(-2)))
	assert.Equal(t, float32(0), relu.derivative(0))

	sig := bindActivation(Sigmoid)
	y := sig.apply(0.3)
	assert.InDelta(t, y*(1-y), sig.derivative(y), 1e-7)
	assert.InDelta(t, 0.25, sig.derivative(sig.apply(0)), 1e-7)

	assert.Panics(t, func() { bindActivation(Softmax) })
}

// TestSoftmaxFn_SumsToOne tests that softmax produces a distribution.
func TestSoftmaxFn_SumsToOne(t *testing.T) {
	probs := SoftmaxFn([]float32{1, 2, 3, 4})

	var sum float32
	for i, p := range probs {
		assert.Greater(t, p, float32(0))
		if i > 0 {
			assert.Greater(t, p, probs[i-1], "softmax must preserve order")
		}
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

// TestSoftmaxFn_ShiftInvariant tests invariance to adding a constant.
func TestSoftmaxFn_ShiftInvariant(t *testing.T) {
	x := []float32{0.5, -1, 2, 0}
	shifted := make([]float32, len(x))
	for i, v := range x {
		shifted[i] = v + 100
	}

	a := SoftmaxFn(x)
	b := SoftmaxFn(shifted)
	for i := range a {
		assert.InDelta(t, a[i], b[i], 1e-6, "index %d", i)
	}
}

// TestSoftmaxFn_LargeLogits tests that large logits do not overflow.
func TestSoftmaxFn_LargeLogits(t *testing.T) {
	probs := SoftmaxFn([]float32{1000, 1000, 990})
	for _, p := range probs {
		assert.False(t, math.IsNaN(float64(p)))
		assert.False(t, math.IsInf(float64(p), 0))
	}
	assert.InDelta(t, 0.5, probs[0], 1e-4)
	assert.InDelta(t, 0.5, probs[1], 1e-4)
}
