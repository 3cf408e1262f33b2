package nn

import (
	"fmt"
)

// Parameter represents a trainable parameter of a layer together with its
// gradient buffer.
//
// The gradient always has the same length as the data. Layers overwrite it
// during Backward with the gradient of the most recent sample; the trainer
// replaces it with a batch average before the optimizer runs.
//
// Example:
//
//	weight := nn.NewParameter("layer_0.weight", 784*128)
//
//	// Access the values
//	w := weight.Data()
//
//	// Gradient after a backward pass
//	grad := weight.Grad()
type Parameter struct {
	name string    // Parameter name (e.g., "layer_0.weight")
	data []float32 // Parameter values
	grad []float32 // Gradient of the loss w.r.t. data
}

// NewParameter creates a zero-initialized parameter of the given length.
//
// Parameters:
//   - name: Descriptive name for this parameter (e.g., "layer_0.bias")
//   - size: Number of elements
//
// Returns a new Parameter.
func NewParameter(name string, size int) *Parameter {
	if size < 0 {
		panic(fmt.Sprintf("NewParameter: negative size %d for %s", size, name))
	}
	return &Parameter{
		name: name,
		data: make([]float32, size),
		grad: make([]float32, size),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Len returns the number of elements.
func (p *Parameter) Len() int {
	return len(p.data)
}

// Data returns the parameter values.
//
// The returned slice aliases the parameter; writes are visible to the layer.
func (p *Parameter) Data() []float32 {
	return p.data
}

// Grad returns the gradient buffer.
//
// The returned slice aliases the parameter; writes are visible to the layer.
func (p *Parameter) Grad() []float32 {
	return p.grad
}

// SetGrad copies grad into the gradient buffer.
//
// Panics if the length differs from the parameter length.
func (p *Parameter) SetGrad(grad []float32) {
	if len(grad) != len(p.grad) {
		panic(fmt.Sprintf("Parameter.SetGrad: %s expects %d values, got %d", p.name, len(p.grad), len(grad)))
	}
	copy(p.grad, grad)
}

// ZeroGrad clears the gradient buffer.
func (p *Parameter) ZeroGrad() {
	clear(p.grad)
}

// Add adds delta element-wise to the parameter values.
//
// Panics if the length differs from the parameter length.
func (p *Parameter) Add(delta []float32) {
	if len(delta) != len(p.data) {
		panic(fmt.Sprintf("Parameter.Add: %s expects %d values, got %d", p.name, len(p.data), len(delta)))
	}
	for i, d := range delta {
		p.data[i] += d
	}
}

// reset reallocates data and gradient with the given length, all zeros.
func (p *Parameter) reset(size int) {
	p.data = make([]float32, size)
	p.grad = make([]float32, size)
}
