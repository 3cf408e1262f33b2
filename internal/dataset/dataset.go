// Package dataset holds labeled image datasets in a flat, sample-major
// layout and reads them from disk.
//
// Sample k occupies Images[k*NumFeatures : (k+1)*NumFeatures] and its class
// is Labels[k]. Datasets can be built in memory with New, read from the
// binary format with Load, or read from MNIST IDX files with LoadIDX.
package dataset

import (
	"fmt"
)

// Dataset is a set of fixed-length float32 feature vectors with uint8 labels.
type Dataset struct {
	Images      []float32 // [NumSamples * NumFeatures], sample-major
	Labels      []uint8   // [NumSamples]
	NumSamples  int
	NumFeatures int
}

// New creates a dataset from flat images and labels.
//
// The sample count is len(images) / numFeatures. Panics if numFeatures is
// not positive, if len(images) is not a multiple of numFeatures, or if the
// number of labels differs from the number of images.
func New(images []float32, labels []uint8, numFeatures int) *Dataset {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("dataset.New: numFeatures must be positive, got %d", numFeatures))
	}
	if len(images)%numFeatures != 0 {
		panic(fmt.Sprintf("dataset.New: %d image values is not a multiple of %d features", len(images), numFeatures))
	}
	numSamples := len(images) / numFeatures
	if len(labels) != numSamples {
		panic(fmt.Sprintf("dataset.New: %d images but %d labels", numSamples, len(labels)))
	}
	return &Dataset{
		Images:      images,
		Labels:      labels,
		NumSamples:  numSamples,
		NumFeatures: numFeatures,
	}
}

// Image returns the feature vector of sample k.
//
// The slice aliases the dataset. Panics if k is out of range.
func (d *Dataset) Image(k int) []float32 {
	if k < 0 || k >= d.NumSamples {
		panic(fmt.Sprintf("Dataset.Image: index %d out of range [0, %d)", k, d.NumSamples))
	}
	return d.Images[k*d.NumFeatures : (k+1)*d.NumFeatures]
}

// Label returns the class of sample k. Panics if k is out of range.
func (d *Dataset) Label(k int) uint8 {
	if k < 0 || k >= d.NumSamples {
		panic(fmt.Sprintf("Dataset.Label: index %d out of range [0, %d)", k, d.NumSamples))
	}
	return d.Labels[k]
}

// NumClasses returns one more than the largest label, or 0 when empty.
func (d *Dataset) NumClasses() int {
	n := 0
	for _, l := range d.Labels {
		n = max(n, int(l)+1)
	}
	return n
}

// Split partitions the dataset into a prefix train set holding
// int(NumSamples*ratio) samples and a suffix test set with the rest.
//
// Both halves are copies and keep the flat layout. Panics if ratio is
// outside [0, 1].
func (d *Dataset) Split(ratio float32) (train, test *Dataset) {
	if ratio < 0 || ratio > 1 {
		panic(fmt.Sprintf("Dataset.Split: ratio must be in [0, 1], got %g", ratio))
	}
	n := int(float32(d.NumSamples) * ratio)
	cut := n * d.NumFeatures

	train = &Dataset{
		Images:      append([]float32(nil), d.Images[:cut]...),
		Labels:      append([]uint8(nil), d.Labels[:n]...),
		NumSamples:  n,
		NumFeatures: d.NumFeatures,
	}
	test = &Dataset{
		Images:      append([]float32(nil), d.Images[cut:]...),
		Labels:      append([]uint8(nil), d.Labels[n:]...),
		NumSamples:  d.NumSamples - n,
		NumFeatures: d.NumFeatures,
	}
	return train, test
}
