// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers for the feed-forward networks of
// package nn.
//
// # Overview
//
// Optimizers read the gradients a backward pass left in every layer and
// move the parameters against them. They hold no reference to the model;
// it is passed to every Update.
//
//   - SGD: plain gradient descent with optional momentum
//   - Adam: adaptive moment estimation with bias correction
//
// # Basic Usage
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//
//	probs := model.Forward(x)
//	model.Backward(criterion.Backward(y, probs))
//	if err := sgd.Update(model); err != nil {
//	    return err
//	}
//
// # Learning Rate
//
// No optimizer has a default learning rate. Update returns
// ErrNoLearningRate until a positive one is configured:
//
//	sgd := optim.NewSGD(optim.SGDConfig{})
//	err := sgd.Update(model) // errors.Is(err, optim.ErrNoLearningRate)
//	sgd.SetLR(0.05)
//
// # Verbose Mode
//
// SGD with Verbose set logs the norm of every layer update:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1, Verbose: true})
//	sgd.SetLogger(log.New(os.Stderr, "", log.LstdFlags))
package optim
