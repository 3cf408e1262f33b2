// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"github.com/born-ml/feedforward/internal/dataset"
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/train"
)

// Trainer runs epochs of mini-batch training and evaluation.
type Trainer = train.Trainer

// Config holds the training loop settings.
type Config = train.Config

// History collects per-epoch records.
type History = train.History

// Epoch is the record of one training epoch.
type Epoch = train.Epoch

// New creates a trainer.
//
// Example:
//
//	trainer := train.New(model, sgd, nn.NewCrossEntropyLoss(), trainSet, testSet, train.Config{
//	    Epochs:    10,
//	    BatchSize: 32,
//	})
func New(model *nn.Model, optimizer optim.Optimizer, loss nn.Loss, trainSet, evalSet *Dataset, cfg Config) *Trainer {
	return train.New(model, optimizer, loss, trainSet, evalSet, cfg)
}

// Datasets

// Dataset is a set of flat float32 feature vectors with uint8 labels.
type Dataset = dataset.Dataset

// NewDataset creates a dataset from flat images and labels.
func NewDataset(images []float32, labels []uint8, numFeatures int) *Dataset {
	return dataset.New(images, labels, numFeatures)
}

// LoadDataset reads a dataset in the little-endian binary format.
func LoadDataset(path string) (*Dataset, error) {
	return dataset.Load(path)
}

// LoadIDX reads MNIST IDX image and label files, keeping at most
// maxSamples samples (0 keeps all).
func LoadIDX(imagesPath, labelsPath string, maxSamples int) (*Dataset, error) {
	return dataset.LoadIDX(imagesPath, labelsPath, maxSamples)
}
