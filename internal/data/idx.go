// Package data loads MNIST-format image sets and serves shuffled
// mini-batches of normalized vectors.
package data

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// IDX magic numbers.
const (
	imagesMagic = 2051
	labelsMagic = 2049
)

// ReadIDXImages parses an IDX image file:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// It returns the raw pixel rows along with the image dimensions.
func ReadIDXImages(r io.Reader) ([][]byte, int, int, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, 0, 0, errors.Wrap(err, "read magic")
	}
	if magic != imagesMagic {
		return nil, 0, 0, errors.Errorf("invalid magic number: got %d, want %d", magic, imagesMagic)
	}

	var numImages, numRows, numCols uint32
	if err := binary.Read(r, binary.BigEndian, &numImages); err != nil {
		return nil, 0, 0, errors.Wrap(err, "read image count")
	}
	if err := binary.Read(r, binary.BigEndian, &numRows); err != nil {
		return nil, 0, 0, errors.Wrap(err, "read row count")
	}
	if err := binary.Read(r, binary.BigEndian, &numCols); err != nil {
		return nil, 0, 0, errors.Wrap(err, "read column count")
	}

	imageSize := int(numRows * numCols)
	images := make([][]byte, numImages)
	for i := range images {
		images[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(r, images[i]); err != nil {
			return nil, 0, 0, errors.Wrapf(err, "read image %d", i)
		}
	}

	return images, int(numRows), int(numCols), nil
}

// ReadIDXLabels parses an IDX label file:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDXLabels(r io.Reader) ([]byte, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != labelsMagic {
		return nil, errors.Errorf("invalid magic number: got %d, want %d", magic, labelsMagic)
	}

	var numLabels uint32
	if err := binary.Read(r, binary.BigEndian, &numLabels); err != nil {
		return nil, errors.Wrap(err, "read label count")
	}

	labels := make([]byte, numLabels)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, errors.Wrap(err, "read labels")
	}

	return labels, nil
}

// ReadIDXImagesFile opens filename and parses it as an IDX image file.
func ReadIDXImagesFile(filename string) ([][]byte, int, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "open images")
	}
	defer file.Close()
	return ReadIDXImages(file)
}

// ReadIDXLabelsFile opens filename and parses it as an IDX label file.
func ReadIDXLabelsFile(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open labels")
	}
	defer file.Close()
	return ReadIDXLabels(file)
}
