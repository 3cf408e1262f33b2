package optim

import (
	"fmt"
	"log"
	"math"

	"github.com/born-ml/feedforward/internal/nn"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// The layer gradients are derivatives of the loss, so the step is taken
// against them. Deltas are applied through Layer.UpdateWeights and
// Layer.UpdateBiases.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
//	for batch := range batches {
//	    // ... forward/backward, gradients stored in the layers ...
//	    if err := sgd.Update(model); err != nil {
//	        return err
//	    }
//	}
type SGD struct {
	lr         float32
	momentum   float32
	verbose    bool
	velocities map[*nn.Parameter][]float32
	steps      int
	logger     *log.Logger
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (required, must be > 0)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
	Verbose  bool    // Log the update magnitude of every step
}

// NewSGD creates a new SGD optimizer and applies config.
//
// A zero learning rate is kept as is: Update reports ErrNoLearningRate
// until Build or SetLR provides a positive one.
//
// Parameters:
//   - config: SGD configuration (LR, Momentum, Verbose)
//
// Returns a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	s := &SGD{
		velocities: make(map[*nn.Parameter][]float32),
		logger:     log.Default(),
	}
	s.Build(config)
	return s
}

// Build (re)configures the optimizer.
//
// Momentum state from earlier steps is discarded.
func (s *SGD) Build(config SGDConfig) {
	if config.Momentum < 0 || config.Momentum >= 1 {
		panic(fmt.Sprintf("SGD.Build: momentum must be in [0, 1), got %g", config.Momentum))
	}
	s.lr = config.LR
	s.momentum = config.Momentum
	s.verbose = config.Verbose
	s.velocities = make(map[*nn.Parameter][]float32)
}

// SetLogger sets the logger used in verbose mode.
func (s *SGD) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// Name returns "sgd".
func (s *SGD) Name() string {
	return "sgd"
}

// LR returns the current learning rate.
func (s *SGD) LR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}

// Update performs a single optimization step on every layer of model.
//
// Returns ErrNoLearningRate if no positive learning rate has been set; the
// model is left untouched in that case.
func (s *SGD) Update(model *nn.Model) error {
	if s.lr <= 0 {
		return ErrNoLearningRate
	}

	s.steps++
	for _, layer := range model.Layers() {
		dw := s.delta(layer.Weights())
		db := s.delta(layer.Biases())
		layer.UpdateWeights(dw)
		layer.UpdateBiases(db)

		if s.verbose {
			s.logger.Printf("sgd step=%d layer=%s lr=%g |dW|=%.6g |db|=%.6g",
				s.steps, layer.Name(), s.lr, norm(dw), norm(db))
		}
	}
	return nil
}

// delta computes the parameter change for one parameter.
func (s *SGD) delta(param *nn.Parameter) []float32 {
	grad := param.Grad()
	delta := make([]float32, len(grad))

	if s.momentum == 0 {
		for i, g := range grad {
			delta[i] = -s.lr * g
		}
		return delta
	}

	velocity, ok := s.velocities[param]
	if !ok || len(velocity) != len(grad) {
		velocity = make([]float32, len(grad))
		s.velocities[param] = velocity
	}
	for i, g := range grad {
		velocity[i] = s.momentum*velocity[i] + g
		delta[i] = -s.lr * velocity[i]
	}
	return delta
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
