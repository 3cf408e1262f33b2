// Package report renders training histories as charts.
package report

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/born-ml/feedforward/internal/train"
)

// Default chart size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// ErrEmptyHistory is returned when there is nothing to plot.
var ErrEmptyHistory = errors.New("report: empty history")

// NewPlot builds a chart with the average loss and the accuracy (as a
// fraction) of every epoch.
func NewPlot(h *train.History) (*plot.Plot, error) {
	if h == nil || h.Len() == 0 {
		return nil, ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = "Training"
	p.X.Label.Text = "epoch"
	p.X.Padding, p.Y.Padding = 0, 0
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	accuracies := h.Accuracies()
	for i := range accuracies {
		accuracies[i] /= 100
	}
	series := []struct {
		name   string
		values []float64
	}{
		{"loss", h.Losses()},
		{"accuracy", accuracies},
	}
	for i, s := range series {
		line, err := newLine(h, s.values, i)
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s: %w", s.name, err)
		}
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	return p, nil
}

func newLine(h *train.History, values []float64, ix int) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(h.Epochs[i].Epoch)
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Width = 2
	l.Color = plotutil.Color(ix)
	return l, nil
}

// Save writes the chart of h to path. The image format follows the file
// extension (svg, png, pdf, ...).
func Save(h *train.History, path string) error {
	p, err := NewPlot(h)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

// Write encodes the chart of h to w in the given format.
func Write(w io.Writer, h *train.History, format string) error {
	p, err := NewPlot(h)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}
