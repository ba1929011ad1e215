package data

import (
	"github.com/pkg/errors"
)

// Dataset holds a set of flattened images normalized to [0, 1].
// Each example is a vector of length Rows*Cols in row-major pixel order.
type Dataset struct {
	vectors [][]float32
	rows    int
	cols    int
}

// NewDataset normalizes raw pixel images (bytes in 0..255) to float32
// vectors in [0, 1]. Every image must have exactly rows*cols pixels.
func NewDataset(images [][]byte, rows, cols int) (*Dataset, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Errorf("invalid image dimensions %dx%d", rows, cols)
	}
	size := rows * cols
	vectors := make([][]float32, len(images))
	for i, img := range images {
		if len(img) != size {
			return nil, errors.Errorf("image %d has %d pixels, want %d", i, len(img), size)
		}
		vec := make([]float32, size)
		for j, p := range img {
			vec[j] = float32(p) / 255.0
		}
		vectors[i] = vec
	}
	return &Dataset{vectors: vectors, rows: rows, cols: cols}, nil
}

// LoadDataset reads an IDX image file and normalizes it into a Dataset.
func LoadDataset(filename string) (*Dataset, error) {
	images, rows, cols, err := ReadIDXImagesFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return NewDataset(images, rows, cols)
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.vectors)
}

// Rows returns the image height in pixels.
func (d *Dataset) Rows() int {
	return d.rows
}

// Cols returns the image width in pixels.
func (d *Dataset) Cols() int {
	return d.cols
}

// VectorDim returns the length of each example vector.
func (d *Dataset) VectorDim() int {
	return d.rows * d.cols
}

// Vector returns example i. The returned slice is the dataset's backing
// storage; callers must not modify it.
func (d *Dataset) Vector(i int) []float32 {
	return d.vectors[i]
}
