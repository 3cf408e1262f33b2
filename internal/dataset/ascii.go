package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MNISTSide is the width and height of an MNIST digit.
const MNISTSide = 28

// NoLabel tells RenderASCII to omit the label line.
const NoLabel = -1

// RenderASCII draws a grayscale image with values in [0, 1] as ASCII art.
//
// The image is drawn width columns wide and len(image)/width rows high
// (rounded up; missing pixels count as 0) inside a box. Pixel intensity maps
// to ' ' < 0.1 <= '.' < 0.3 <= ':' < 0.5 <= '+' < 0.7 <= '*' < 0.9 <= '#'.
// A "Label: n" line is printed first unless label is NoLabel.
func RenderASCII(w io.Writer, image []float32, width, label int) error {
	if width <= 0 {
		return fmt.Errorf("RenderASCII: width must be positive, got %d", width)
	}
	height := (len(image) + width - 1) / width

	bw := bufio.NewWriter(w)
	if label != NoLabel {
		fmt.Fprintf(bw, "\nLabel: %d\n", label)
	}
	border := strings.Repeat("─", width)
	fmt.Fprintf(bw, "┌%s┐\n", border)
	for y := 0; y < height; y++ {
		bw.WriteString("│")
		for x := 0; x < width; x++ {
			var pixel float32
			if idx := y*width + x; idx < len(image) {
				pixel = image[idx]
			}
			bw.WriteByte(shade(pixel))
		}
		bw.WriteString("│\n")
	}
	fmt.Fprintf(bw, "└%s┘\n", border)
	return bw.Flush()
}

func shade(pixel float32) byte {
	switch {
	case pixel < 0.1:
		return ' '
	case pixel < 0.3:
		return '.'
	case pixel < 0.5:
		return ':'
	case pixel < 0.7:
		return '+'
	case pixel < 0.9:
		return '*'
	default:
		return '#'
	}
}

// Display draws sample k with its label, MNISTSide pixels wide.
//
// Returns an error for an out-of-range index.
func (d *Dataset) Display(w io.Writer, k int) error {
	if k < 0 || k >= d.NumSamples {
		return fmt.Errorf("invalid index: %d (dataset has %d samples)", k, d.NumSamples)
	}
	return RenderASCII(w, d.Image(k), MNISTSide, int(d.Label(k)))
}
