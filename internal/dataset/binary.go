package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// headerSize is the length of the binary header: two little-endian uint64
// values, the sample count followed by the feature count.
const headerSize = 16

// ErrBadHeader is returned when a binary header describes an impossible
// dataset.
var ErrBadHeader = errors.New("dataset: invalid header")

// Load reads a dataset in the binary format from path.
//
// Binary format (all little-endian):
//
//	[numSamples  uint64]
//	[numFeatures uint64]
//	[numSamples*numFeatures float32]  image values, sample-major
//	[numSamples uint8]                labels
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	d, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return d, nil
}

// Read decodes a dataset in the binary format from r.
func Read(r io.Reader) (*Dataset, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	numSamples := binary.LittleEndian.Uint64(header[0:8])
	numFeatures := binary.LittleEndian.Uint64(header[8:16])

	if numFeatures == 0 {
		return nil, fmt.Errorf("%w: zero features", ErrBadHeader)
	}
	if numSamples > math.MaxInt32 || numFeatures > math.MaxInt32 ||
		numSamples*numFeatures > math.MaxInt/4 {
		return nil, fmt.Errorf("%w: %d samples x %d features is too large", ErrBadHeader, numSamples, numFeatures)
	}

	images := make([]float32, numSamples*numFeatures)
	if err := binary.Read(r, binary.LittleEndian, images); err != nil {
		return nil, fmt.Errorf("failed to read images: %w", err)
	}

	labels := make([]uint8, numSamples)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	return New(images, labels, int(numFeatures)), nil
}

// Save writes d to path in the binary format.
func Save(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := Write(w, d); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes d to w in the binary format.
func Write(w io.Writer, d *Dataset) error {
	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(d.NumSamples))
	binary.LittleEndian.PutUint64(header[8:16], uint64(d.NumFeatures))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, d.Images); err != nil {
		return fmt.Errorf("failed to write images: %w", err)
	}
	if _, err := w.Write(d.Labels); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}
