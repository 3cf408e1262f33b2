package nn

import (
	"fmt"
	"io"
	"math/rand"
)

// Model is an ordered stack of layers.
//
// Each layer's output becomes the next layer's input. The model owns its
// layers exclusively; a layer must not be shared between models.
//
// Example:
//
//	model := nn.NewModel(
//	    nn.NewFullyConnected("layer_0", 784, 128, nn.ReLU),
//	    nn.NewFullyConnected("layer_1", 128, 10, nn.Identity),
//	    nn.NewSoftmax("softmax_2", 10),
//	)
//	model.Build(rand.New(rand.NewSource(42)))
//
//	probs := model.Forward(image)
type Model struct {
	layers []Layer
}

// NewModel creates a model from a non-empty list of layers.
//
// Panics if no layers are given or if the output size of layer k differs
// from the input size of layer k+1.
func NewModel(layers ...Layer) *Model {
	if len(layers) == 0 {
		panic("NewModel: at least one layer is required")
	}
	for k := 1; k < len(layers); k++ {
		prev, next := layers[k-1], layers[k]
		if prev.OutSize() != next.InSize() {
			panic(fmt.Sprintf("NewModel: %s outputs %d values but %s expects %d",
				prev.Name(), prev.OutSize(), next.Name(), next.InSize()))
		}
	}
	return &Model{layers: layers}
}

// Build builds every layer in declaration order from the same source.
func (m *Model) Build(rng *rand.Rand) {
	for _, layer := range m.layers {
		layer.Build(rng)
	}
}

// Forward threads x through the layers left to right.
//
// Returns the output of the last layer.
func (m *Model) Forward(x []float32) []float32 {
	out := x
	for _, layer := range m.layers {
		out = layer.Forward(out)
	}
	return out
}

// Backward threads the loss gradient through the layers right to left.
//
// After it returns, every layer's parameter gradients hold the gradient
// for the sample of the last Forward call. The gradient w.r.t. the model
// input is discarded.
func (m *Model) Backward(lossGrad []float32) {
	grad := lossGrad
	for k := len(m.layers) - 1; k >= 0; k-- {
		grad = m.layers[k].Backward(grad)
	}
}

// Layers returns the layers in declaration order.
func (m *Model) Layers() []Layer {
	return m.layers
}

// Len returns the number of layers.
func (m *Model) Len() int {
	return len(m.layers)
}

// InSize returns the input size of the first layer.
func (m *Model) InSize() int {
	return m.layers[0].InSize()
}

// OutSize returns the output size of the last layer.
func (m *Model) OutSize() int {
	return m.layers[len(m.layers)-1].OutSize()
}

// NumParameters returns the number of trainable values, excluding the
// placeholder buffers of Softmax layers.
func (m *Model) NumParameters() int {
	n := 0
	for _, layer := range m.layers {
		if layer.Activation() == Softmax {
			continue
		}
		n += layer.Weights().Len() + layer.Biases().Len()
	}
	return n
}

// Summary writes a per-layer description of the model to w.
func (m *Model) Summary(w io.Writer) error {
	const rule = "-----------------------------\n"
	for _, layer := range m.layers {
		if _, err := io.WriteString(w, rule); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, " Layer Name = %s\n     Input Size      : %d\n     Output Size     : %d\n     Activation      : %s\n",
			layer.Name(), layer.InSize(), layer.OutSize(), layer.Activation())
		if err != nil {
			return err
		}
		if layer.Activation() != Softmax {
			_, err = fmt.Fprintf(w, "     Weights Length  : %d\n     Biases Length   : %d\n",
				layer.Weights().Len(), layer.Biases().Len())
			if err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, rule)
	return err
}

// NewMLP builds a multilayer perceptron from consecutive layer sizes.
//
// For sizes [s0, s1, ..., sn] it creates FullyConnected layers layer_0 ...
// layer_{n-1} mapping s_k to s_{k+1}. Hidden layers use activation; the
// last FullyConnected layer uses Identity when withSoftmax is set (the
// softmax supplies the nonlinearity) and activation otherwise. With
// withSoftmax a layer softmax_n of size sn is appended.
//
// Panics if fewer than two sizes are given.
func NewMLP(sizes []int, activation Activation, withSoftmax bool) *Model {
	if len(sizes) < 2 {
		panic(fmt.Sprintf("NewMLP: need at least input and output sizes, got %v", sizes))
	}

	n := len(sizes) - 1
	layers := make([]Layer, 0, n+1)
	for k := 0; k < n; k++ {
		act := activation
		if k == n-1 && withSoftmax {
			act = Identity
		}
		layers = append(layers, NewFullyConnected(fmt.Sprintf("layer_%d", k), sizes[k], sizes[k+1], act))
	}
	if withSoftmax {
		layers = append(layers, NewSoftmax(fmt.Sprintf("softmax_%d", n), sizes[n]))
	}
	return NewModel(layers...)
}
