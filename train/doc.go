// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs mini-batch gradient descent for models of package nn.
//
// # Overview
//
// A Trainer shuffles the train set every epoch, splits it into batches,
// averages per-sample gradients over each batch and calls the optimizer
// once per batch. After each epoch it measures classification accuracy on
// the evaluation set.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(1))
//	model := nn.NewMLP([]int{784, 128, 10}, nn.ReLU, true)
//	model.Build(rng)
//
//	trainer := train.New(model, optim.NewSGD(optim.SGDConfig{LR: 0.1}),
//	    nn.NewCrossEntropyLoss(), trainSet, testSet, train.Config{
//	        Epochs:    5,
//	        BatchSize: 32,
//	        Rand:      rng,
//	    })
//	history, err := trainer.Run()
//
// # Datasets
//
// Datasets hold flat float32 images and uint8 labels:
//
//	trainSet, testSet := train.NewDataset(images, labels, 784).Split(0.8)
//	data, err := train.LoadDataset("mnist.bin")
//	data, err := train.LoadIDX("train-images-idx3-ubyte", "train-labels-idx1-ubyte", 0)
package train
