// Package optim implements optimization algorithms for training the
// feed-forward networks of package nn.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//
// An optimizer holds no reference to a model. It is handed the model on
// every Update and applies whatever gradients the layers currently store;
// whether those are per-sample or batch-averaged is the trainer's concern.
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//
//	// Training step
//	probs := model.Forward(x)
//	model.Backward(loss.Backward(y, probs))
//	if err := sgd.Update(model); err != nil {
//	    return err
//	}
package optim

import (
	"errors"

	"github.com/born-ml/feedforward/internal/nn"
)

// ErrNoLearningRate is returned by Update when no positive learning rate
// has been configured.
var ErrNoLearningRate = errors.New("optim: learning rate not set")

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Name: Identify the algorithm in logs
//   - Update: Apply the stored layer gradients to the layer parameters
//   - LR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Name returns the optimizer name.
	Name() string

	// Update applies one step to every layer of model using the gradients
	// currently stored in the layers.
	Update(model *nn.Model) error

	// LR returns the current learning rate.
	LR() float32
}
