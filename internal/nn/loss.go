package nn

// Loss is the interface implemented by loss functions.
//
// Losses are stateless: Forward and Backward depend only on their
// arguments and may be called in any order.
type Loss interface {
	// Name returns the loss name.
	Name() string

	// Forward returns the scalar loss of prediction yPred against target yTrue.
	Forward(yTrue, yPred []float32) float32

	// Backward returns the gradient of the loss w.r.t. yPred.
	Backward(yTrue, yPred []float32) []float32
}
