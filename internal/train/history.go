package train

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// Epoch is the record of one training epoch.
type Epoch struct {
	Epoch    int           // 1-based epoch number
	AvgLoss  float32       // Mean per-sample training loss
	Accuracy float32       // Evaluation accuracy in percent
	Duration time.Duration // Wall time of training plus evaluation
}

// History collects epoch records in order.
type History struct {
	Epochs []Epoch
}

// Add appends an epoch record.
func (h *History) Add(e Epoch) {
	h.Epochs = append(h.Epochs, e)
}

// Len returns the number of recorded epochs.
func (h *History) Len() int {
	return len(h.Epochs)
}

// Losses returns the average loss of every epoch.
func (h *History) Losses() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		out[i] = float64(e.AvgLoss)
	}
	return out
}

// Accuracies returns the accuracy of every epoch.
func (h *History) Accuracies() []float64 {
	out := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		out[i] = float64(e.Accuracy)
	}
	return out
}

// Best returns the epoch with the highest accuracy, the earliest on ties.
// ok is false for an empty history.
func (h *History) Best() (best Epoch, ok bool) {
	if len(h.Epochs) == 0 {
		return Epoch{}, false
	}
	return h.Epochs[floats.MaxIdx(h.Accuracies())], true
}

// MeanLoss returns the mean of the epoch losses, or 0 for an empty history.
func (h *History) MeanLoss() float64 {
	if len(h.Epochs) == 0 {
		return 0
	}
	return floats.Sum(h.Losses()) / float64(len(h.Epochs))
}

// TotalDuration returns the summed wall time of all epochs.
func (h *History) TotalDuration() time.Duration {
	var d time.Duration
	for _, e := range h.Epochs {
		d += e.Duration
	}
	return d
}
