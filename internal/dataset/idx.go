package dataset

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	idxImagesMagic = 2051
	idxLabelsMagic = 2049
)

// LoadIDX loads MNIST data from the official IDX binary files.
//
// Pixels (0-255) are normalized to [0, 1].
//
// Parameters:
//   - imagesPath: e.g. train-images-idx3-ubyte
//   - labelsPath: e.g. train-labels-idx1-ubyte
//   - maxSamples: Maximum number of samples to keep (0 = keep all)
//
// Download MNIST from: http://yann.lecun.com/exdb/mnist/
func LoadIDX(imagesPath, labelsPath string, maxSamples int) (*Dataset, error) {
	pixels, numImages, imageSize, err := readIDXImages(imagesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labels, err := readIDXLabels(labelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	if numImages != len(labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", numImages, len(labels))
	}

	numSamples := numImages
	if maxSamples > 0 && numSamples > maxSamples {
		numSamples = maxSamples
	}

	images := make([]float32, numSamples*imageSize)
	for i := range images {
		images[i] = float32(pixels[i]) / 255.0
	}
	return New(images, labels[:numSamples], imageSize), nil
}

// readIDXImages reads an image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func readIDXImages(filename string) (pixels []byte, numImages, imageSize int, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, 0, err
	}
	defer file.Close()
	r := bufio.NewReader(file)

	var header struct {
		Magic, NumImages, NumRows, NumCols uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read header: %w", err)
	}
	if header.Magic != idxImagesMagic {
		return nil, 0, 0, fmt.Errorf("invalid magic number: got %d, want %d", header.Magic, idxImagesMagic)
	}

	numImages = int(header.NumImages)
	imageSize = int(header.NumRows * header.NumCols)
	if imageSize == 0 {
		return nil, 0, 0, fmt.Errorf("invalid image size %dx%d", header.NumRows, header.NumCols)
	}
	pixels = make([]byte, numImages*imageSize)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read pixels: %w", err)
	}
	return pixels, numImages, imageSize, nil
}

// readIDXLabels reads a label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := bufio.NewReader(file)

	var header struct {
		Magic, NumLabels uint32
	}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if header.Magic != idxLabelsMagic {
		return nil, fmt.Errorf("invalid magic number: got %d, want %d", header.Magic, idxLabelsMagic)
	}

	labels := make([]byte, header.NumLabels)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	return labels, nil
}
