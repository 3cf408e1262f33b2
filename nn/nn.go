// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/feedforward/internal/nn"
)

// Layer is the common interface of all layers.
type Layer = nn.Layer

// Parameter is a flat parameter vector with its gradient buffer.
type Parameter = nn.Parameter

// NewParameter creates a zeroed parameter of the given size.
func NewParameter(name string, size int) *Parameter {
	return nn.NewParameter(name, size)
}

// Activations

// Activation names the element-wise function of a layer.
type Activation = nn.Activation

// Supported activations.
const (
	Identity = nn.Identity
	ReLU     = nn.ReLU
	Sigmoid  = nn.Sigmoid
	Softmax  = nn.Softmax
)

// ParseActivation converts a name like "relu" into an Activation.
// The empty string selects Identity.
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// Layers

// FullyConnected represents a dense layer followed by an activation.
type FullyConnected = nn.FullyConnected

// NewFullyConnected creates a dense layer. Parameters are zero until Build.
//
// Example:
//
//	layer := nn.NewFullyConnected("layer_0", 784, 128, nn.ReLU)
func NewFullyConnected(name string, inSize, outSize int, activation Activation) *FullyConnected {
	return nn.NewFullyConnected(name, inSize, outSize, activation)
}

// SoftmaxLayer normalizes its input into a probability vector.
type SoftmaxLayer = nn.SoftmaxLayer

// NewSoftmax creates a Softmax layer over vectors of the given size.
func NewSoftmax(name string, size int) *SoftmaxLayer {
	return nn.NewSoftmax(name, size)
}

// Models

// Model is an ordered stack of layers.
type Model = nn.Model

// NewModel creates a model from layers whose sizes chain.
func NewModel(layers ...Layer) *Model {
	return nn.NewModel(layers...)
}

// NewMLP creates FullyConnected layers for consecutive sizes, optionally
// followed by a Softmax layer.
//
// Example:
//
//	model := nn.NewMLP([]int{784, 128, 10}, nn.ReLU, true)
func NewMLP(sizes []int, activation Activation, withSoftmax bool) *Model {
	return nn.NewMLP(sizes, activation, withSoftmax)
}

// Loss functions

// Loss is the interface of all loss functions.
type Loss = nn.Loss

// CrossEntropyLoss compares a one-hot target with predicted probabilities.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewCrossEntropyLoss creates a cross-entropy loss.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}
