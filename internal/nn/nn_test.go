package nn_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/feedforward/internal/nn"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

// fixedFC builds a FullyConnected layer and overwrites its parameters.
func fixedFC(t *testing.T, in, out int, act nn.Activation, w, b []float32) *nn.FullyConnected {
	t.Helper()
	fc := nn.NewFullyConnected("fc", in, out, act)
	fc.Build(newRand())
	require.Len(t, w, in*out)
	require.Len(t, b, out)
	copy(fc.Weights().Data(), w)
	copy(fc.Biases().Data(), b)
	return fc
}

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	p := nn.NewParameter("test_param", 3)
	assert.Equal(t, "test_param", p.Name())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []float32{0, 0, 0}, p.Data())
	assert.Equal(t, []float32{0, 0, 0}, p.Grad())

	p.Add([]float32{1, 2, 3})
	p.Add([]float32{0.5, 0.5, 0.5})
	assert.Equal(t, []float32{1.5, 2.5, 3.5}, p.Data())

	p.SetGrad([]float32{4, 5, 6})
	assert.Equal(t, []float32{4, 5, 6}, p.Grad())
	p.ZeroGrad()
	assert.Equal(t, []float32{0, 0, 0}, p.Grad())

	assert.Panics(t, func() { p.Add([]float32{1}) })
	assert.Panics(t, func() { p.SetGrad([]float32{1, 2}) })
}

// TestFullyConnected_IdentityMatchesMatVec tests y = W·x + b against a
// reference matrix-vector product.
func TestFullyConnected_IdentityMatchesMatVec(t *testing.T) {
	w := []float32{
		0.1, -0.2, 0.3, 0.4,
		-0.5, 0.6, 0.7, -0.8,
		0.9, 1.0, -1.1, 1.2,
	}
	b := []float32{0.01, -0.02, 0.03}
	x := []float32{1, 2, -3, 0.5}
	fc := fixedFC(t, 4, 3, nn.Identity, w, b)

	got := fc.Forward(x)

	wf := make([]float64, len(w))
	for i, v := range w {
		wf[i] = float64(v)
	}
	xf := make([]float64, len(x))
	for i, v := range x {
		xf[i] = float64(v)
	}
	var want mat.VecDense
	want.MulVec(mat.NewDense(3, 4, wf), mat.NewVecDense(4, xf))
	for j := range got {
		assert.InDelta(t, want.AtVec(j)+float64(b[j]), got[j], 1e-5, "output %d", j)
	}
}

// TestFullyConnected_Activations tests that the activation is applied after
// the affine transformation.
func TestFullyConnected_Activations(t *testing.T) {
	w := []float32{1, -1, -1, 1}
	b := []float32{0, 0}
	x := []float32{2, 1} // pre-activation [1, -1]

	relu := fixedFC(t, 2, 2, nn.ReLU, w, b).Forward(x)
	assert.Equal(t, []float32{1, 0}, relu)

	sig := fixedFC(t, 2, 2, nn.Sigmoid, w, b).Forward(x)
	assert.InDelta(t, 1/(1+math.Exp(-1)), sig[0], 1e-6)
	assert.InDelta(t, 1/(1+math.Exp(1)), sig[1], 1e-6)
}

// TestFullyConnected_Backward tests hand-computed gradients.
func TestFullyConnected_Backward(t *testing.T) {
	w := []float32{
		1, 2,
		3, 4,
		5, 6,
	}
	b := []float32{2, -100, 0}
	x := []float32{1, -1}
	fc := fixedFC(t, 2, 3, nn.ReLU, w, b)

	// Pre-activations are [1, -101, -1]: only unit 0 is active.
	out := fc.Forward(x)
	require.Equal(t, []float32{1, 0, 0}, out)

	gradIn := fc.Backward([]float32{0.5, 7, 9})

	// Only unit 0 passes its gradient.
	assert.Equal(t, []float32{0.5, 0, 0}, fc.Biases().Grad())
	assert.Equal(t, []float32{0.5, -0.5, 0, 0, 0, 0}, fc.Weights().Grad())
	assert.Equal(t, []float32{0.5 * 1, 0.5 * 2}, gradIn)
}

// TestFullyConnected_BackwardOverwrites tests that gradients are not
// accumulated across samples.
func TestFullyConnected_BackwardOverwrites(t *testing.T) {
	fc := fixedFC(t, 2, 1, nn.Identity, []float32{1, 1}, []float32{0})

	fc.Forward([]float32{1, 2})
	fc.Backward([]float32{1})
	fc.Forward([]float32{3, 4})
	fc.Backward([]float32{1})

	assert.Equal(t, []float32{3, 4}, fc.Weights().Grad())
	assert.Equal(t, []float32{1}, fc.Biases().Grad())
}

// TestFullyConnected_ForwardCopiesInput tests that the cached input does not
// alias the caller's buffer.
func TestFullyConnected_ForwardCopiesInput(t *testing.T) {
	fc := fixedFC(t, 2, 1, nn.Identity, []float32{1, 1}, []float32{0})

	x := []float32{1, 2}
	fc.Forward(x)
	x[0], x[1] = 100, 100
	fc.Backward([]float32{1})

	assert.Equal(t, []float32{1, 2}, fc.Weights().Grad())
}

// TestFullyConnected_Preconditions tests fail-fast contract violations.
func TestFullyConnected_Preconditions(t *testing.T) {
	fc := fixedFC(t, 2, 3, nn.Identity, make([]float32, 6), make([]float32, 3))

	assert.Panics(t, func() { fc.Forward([]float32{1}) }, "short input")
	assert.Panics(t, func() { fc.Backward([]float32{1, 2, 3}) }, "no preceding Forward")

	fc.Forward([]float32{1, 2})
	assert.Panics(t, func() { fc.Backward([]float32{1, 2}) }, "short gradient")

	fc.Forward([]float32{1, 2})
	fc.Backward([]float32{1, 2, 3})
	assert.Panics(t, func() { fc.Backward([]float32{1, 2, 3}) }, "cache consumed by Backward")

	assert.Panics(t, func() { fc.UpdateWeights([]float32{1}) })
	assert.Panics(t, func() { fc.UpdateBiases([]float32{1}) })
	assert.Panics(t, func() { nn.NewFullyConnected("bad", 0, 3, nn.Identity) })
	assert.Panics(t, func() { nn.NewFullyConnected("bad", 2, 3, nn.Softmax) })
}

// TestFullyConnected_Build tests initialization statistics and determinism.
func TestFullyConnected_Build(t *testing.T) {
	a := nn.NewFullyConnected("a", 100, 50, nn.Sigmoid)
	b := nn.NewFullyConnected("b", 100, 50, nn.Sigmoid)

	for _, v := range a.Weights().Data() {
		require.Zero(t, v, "parameters are zero before Build")
	}

	a.Build(rand.New(rand.NewSource(42)))
	b.Build(rand.New(rand.NewSource(42)))
	assert.Equal(t, a.Weights().Data(), b.Weights().Data(), "same seed, same weights")
	assert.Equal(t, a.Biases().Data(), b.Biases().Data())
	assert.Len(t, a.Weights().Grad(), 100*50)
	assert.Len(t, a.Biases().Grad(), 50)

	var sum, sumSq float64
	data := a.Weights().Data()
	for _, v := range data {
		sum += float64(v)
		sumSq += float64(v) * float64(v)
	}
	n := float64(len(data))
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	assert.InDelta(t, 0, mean, 1e-3)
	assert.InDelta(t, nn.InitStdDev, std, 1e-3)
}

// TestUpdateWeights tests element-wise parameter updates.
func TestUpdateWeights(t *testing.T) {
	fc := fixedFC(t, 2, 1, nn.Identity, []float32{1, 2}, []float32{3})

	fc.UpdateWeights([]float32{0.5, -0.5})
	fc.UpdateBiases([]float32{-1})

	assert.Equal(t, []float32{1.5, 1.5}, fc.Weights().Data())
	assert.Equal(t, []float32{2}, fc.Biases().Data())
}

// TestSoftmaxLayer_Forward tests normalization and caching.
func TestSoftmaxLayer_Forward(t *testing.T) {
	sm := nn.NewSoftmax("softmax", 3)
	sm.Build(newRand())

	probs := sm.Forward([]float32{1, 2, 3})
	assert.InDelta(t, 1.0, probs[0]+probs[1]+probs[2], 1e-6)
	assert.Equal(t, nn.Softmax, sm.Activation())
	assert.Equal(t, 3, sm.InSize())
	assert.Equal(t, 3, sm.OutSize())
	assert.Len(t, sm.Weights().Data(), 9)
	for _, v := range sm.Weights().Data() {
		assert.Zero(t, v, "softmax placeholders are not randomized")
	}
}

// TestSoftmaxLayer_BackwardMatchesJacobian tests the vector-Jacobian product
// against the explicit Jacobian s_i(δ_ij - s_j).
func TestSoftmaxLayer_BackwardMatchesJacobian(t *testing.T) {
	sm := nn.NewSoftmax("softmax", 4)
	s := sm.Forward([]float32{0.2, -1, 0.7, 1.5})
	g := []float32{0.3, -2, 1, 0.1}

	gradIn := sm.Backward(g)

	for j := range s {
		var want float64
		for i := range s {
			delta := 0.0
			if i == j {
				delta = 1
			}
			want += float64(g[i]) * float64(s[i]) * (delta - float64(s[j]))
		}
		assert.InDelta(t, want, gradIn[j], 1e-6, "input %d", j)
	}
	for _, v := range sm.Weights().Grad() {
		assert.Zero(t, v)
	}
	for _, v := range sm.Biases().Grad() {
		assert.Zero(t, v)
	}
}

// TestModel_ForwardBackward tests chaining through layers in both directions.
func TestModel_ForwardBackward(t *testing.T) {
	fc1 := nn.NewFullyConnected("layer_0", 3, 2, nn.Identity)
	fc2 := nn.NewFullyConnected("layer_1", 2, 2, nn.Identity)
	model := nn.NewModel(fc1, fc2)
	model.Build(newRand())

	copy(fc1.Weights().Data(), []float32{1, 0, 0, 0, 1, 0})
	copy(fc1.Biases().Data(), []float32{0, 0})
	copy(fc2.Weights().Data(), []float32{0, 1, 1, 0})
	copy(fc2.Biases().Data(), []float32{10, 20})

	out := model.Forward([]float32{1, 2, 3})
	assert.Equal(t, []float32{12, 21}, out)

	model.Backward([]float32{1, 0})

	// layer_1 sees the input [1, 2]; gradient flows to layer_0 via W2ᵀ·[1,0] = [0,1].
	assert.Equal(t, []float32{1, 2, 0, 0}, fc2.Weights().Grad())
	assert.Equal(t, []float32{0, 1}, fc1.Biases().Grad())
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, fc1.Weights().Grad())

	assert.Equal(t, 2, model.Len())
	assert.Equal(t, 3, model.InSize())
	assert.Equal(t, 2, model.OutSize())
	assert.Equal(t, 3*2+2+2*2+2, model.NumParameters())
}

// TestNewModel_Validation tests construction preconditions.
func TestNewModel_Validation(t *testing.T) {
	assert.Panics(t, func() { nn.NewModel() })
	assert.Panics(t, func() {
		nn.NewModel(
			nn.NewFullyConnected("layer_0", 4, 3, nn.Identity),
			nn.NewSoftmax("softmax_1", 4),
		)
	})
}

// TestNewMLP tests layer naming, sizes and activations.
func TestNewMLP(t *testing.T) {
	model := nn.NewMLP([]int{784, 128, 10}, nn.ReLU, true)
	layers := model.Layers()
	require.Len(t, layers, 3)

	assert.Equal(t, "layer_0", layers[0].Name())
	assert.Equal(t, nn.ReLU, layers[0].Activation())
	assert.Equal(t, "layer_1", layers[1].Name())
	assert.Equal(t, nn.Identity, layers[1].Activation())
	assert.Equal(t, "softmax_2", layers[2].Name())
	assert.Equal(t, nn.Softmax, layers[2].Activation())
	assert.Equal(t, 10, model.OutSize())
	assert.Equal(t, 784*128+128+128*10+10, model.NumParameters())

	plain := nn.NewMLP([]int{4, 3}, nn.Sigmoid, false)
	require.Equal(t, 1, plain.Len())
	assert.Equal(t, nn.Sigmoid, plain.Layers()[0].Activation())

	assert.Panics(t, func() { nn.NewMLP([]int{4}, nn.ReLU, true) })
}

// TestModel_Summary tests the layer listing.
func TestModel_Summary(t *testing.T) {
	model := nn.NewMLP([]int{4, 3}, nn.Identity, true)

	var buf bytes.Buffer
	require.NoError(t, model.Summary(&buf))
	out := buf.String()

	assert.Contains(t, out, "Layer Name = layer_0")
	assert.Contains(t, out, "Weights Length  : 12")
	assert.Contains(t, out, "Layer Name = softmax_1")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Weights Length")), "softmax omits parameter lengths")
}
