// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides feed-forward network layers with hand-derived gradients.
//
// # Overview
//
// This package contains:
//   - Layers: FullyConnected, Softmax
//   - Activations: Identity, ReLU, Sigmoid (bound at Build)
//   - Loss functions: CrossEntropyLoss
//   - Utilities: Model, Layer interface, Parameter, NewMLP
//   - Initialization: Normal(0, 0.01) at Build
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/feedforward/nn"
//	)
//
//	func main() {
//	    model := nn.NewModel(
//	        nn.NewFullyConnected("layer_0", 784, 128, nn.ReLU),
//	        nn.NewFullyConnected("layer_1", 128, 10, nn.Identity),
//	        nn.NewSoftmax("softmax_2", 10),
//	    )
//	    model.Build(rand.New(rand.NewSource(1)))
//
//	    probs := model.Forward(image)
//	}
//
// # Layers
//
// FullyConnected: y = act(W·x + b) with W stored row-major, one row per output
//
//	layer := nn.NewFullyConnected("hidden", inSize, outSize, nn.Sigmoid)
//
// Softmax: normalizes a vector into probabilities; it has no trainable
// parameters
//
//	softmax := nn.NewSoftmax("softmax", size)
//
// # Training Step
//
// Backward runs in reverse layer order and leaves the parameter gradients
// in each layer, ready for an optimizer:
//
//	criterion := nn.NewCrossEntropyLoss()
//	probs := model.Forward(x)
//	loss := criterion.Forward(y, probs)
//	model.Backward(criterion.Backward(y, probs))
//
// A forward pass must precede every backward pass; the cache it leaves is
// consumed by Backward.
//
// # Inspection
//
//	model.Summary(os.Stdout)
//	fmt.Println(model.NumParameters())
package nn
