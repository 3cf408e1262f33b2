package optim

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/feedforward/internal/nn"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	adam := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//	trainer := train.New(model, adam, nn.NewCrossEntropyLoss(), trainSet, testSet, cfg)
type Adam struct {
	lr    float32
	beta1 float32
	beta2 float32
	eps   float32
	t     int                         // Timestep for bias correction
	m     map[*nn.Parameter][]float32 // First moment estimates
	v     map[*nn.Parameter][]float32 // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (required, must be > 0)
	Betas [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
//
// As with SGD, the learning rate has no default.
func NewAdam(config AdamConfig) *Adam {
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[*nn.Parameter][]float32),
		v:     make(map[*nn.Parameter][]float32),
	}
}

// Name returns "adam".
func (a *Adam) Name() string {
	return "adam"
}

// LR returns the current learning rate.
func (a *Adam) LR() float32 {
	return a.lr
}

// Update performs a single optimization step on every layer of model.
//
// Returns ErrNoLearningRate if no positive learning rate has been set.
func (a *Adam) Update(model *nn.Model) error {
	if a.lr <= 0 {
		return ErrNoLearningRate
	}

	a.t++
	biasCorrection1 := 1 - math32.Pow(a.beta1, float32(a.t))
	biasCorrection2 := 1 - math32.Pow(a.beta2, float32(a.t))

	for _, layer := range model.Layers() {
		layer.UpdateWeights(a.delta(layer.Weights(), biasCorrection1, biasCorrection2))
		layer.UpdateBiases(a.delta(layer.Biases(), biasCorrection1, biasCorrection2))
	}
	return nil
}

func (a *Adam) delta(param *nn.Parameter, bc1, bc2 float32) []float32 {
	grad := param.Grad()
	m := a.moment(a.m, param)
	v := a.moment(a.v, param)

	delta := make([]float32, len(grad))
	for i, g := range grad {
		m[i] = a.beta1*m[i] + (1-a.beta1)*g
		v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
		mHat := m[i] / bc1
		vHat := v[i] / bc2
		delta[i] = -a.lr * mHat / (math32.Sqrt(vHat) + a.eps)
	}
	return delta
}

func (a *Adam) moment(store map[*nn.Parameter][]float32, param *nn.Parameter) []float32 {
	buf, ok := store[param]
	if !ok || len(buf) != param.Len() {
		buf = make([]float32, param.Len())
		store[param] = buf
	}
	return buf
}
