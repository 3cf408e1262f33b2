// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/feedforward/nn"
)

// TestLayerInterface verifies that concrete types implement Layer.
func TestLayerInterface(t *testing.T) {
	tests := []struct {
		name  string
		layer nn.Layer
	}{
		{
			name:  "FullyConnected",
			layer: nn.NewFullyConnected("fc", 10, 5, nn.ReLU),
		},
		{
			name:  "Softmax",
			layer: nn.NewSoftmax("softmax", 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.layer.Build(rand.New(rand.NewSource(1)))

			out := tt.layer.Forward(make([]float32, tt.layer.InSize()))
			if len(out) != tt.layer.OutSize() {
				t.Errorf("Forward returned %d values, expected %d", len(out), tt.layer.OutSize())
			}

			grad := tt.layer.Backward(make([]float32, tt.layer.OutSize()))
			if len(grad) != tt.layer.InSize() {
				t.Errorf("Backward returned %d values, expected %d", len(grad), tt.layer.InSize())
			}
		})
	}
}

// TestNewMLP verifies the public model builder.
func TestNewMLP(t *testing.T) {
	model := nn.NewMLP([]int{784, 128, 10}, nn.ReLU, true)
	model.Build(rand.New(rand.NewSource(1)))

	if model.Len() != 3 {
		t.Fatalf("expected 3 layers, got %d", model.Len())
	}
	if got := model.NumParameters(); got != 784*128+128+128*10+10 {
		t.Errorf("unexpected parameter count %d", got)
	}

	probs := model.Forward(make([]float32, 784))
	var sum float32
	for _, p := range probs {
		sum += p
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("softmax output sums to %f", sum)
	}
}

func TestParseActivation(t *testing.T) {
	act, err := nn.ParseActivation("sigmoid")
	if err != nil || act != nn.Sigmoid {
		t.Errorf("ParseActivation(sigmoid) = %q, %v", act, err)
	}
	if _, err := nn.ParseActivation("softmax"); err == nil {
		t.Error("softmax is not a FullyConnected activation")
	}
}
