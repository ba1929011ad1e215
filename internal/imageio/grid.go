// Package imageio renders batches of flattened grayscale images as PNG
// contact sheets.
package imageio

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// GridOptions controls contact sheet layout.
type GridOptions struct {
	// Columns is the number of images per row.
	Columns int
	// Padding is the gap between cells in source pixels.
	Padding int
	// Scale upsamples the final sheet by an integer factor using
	// nearest-neighbor so the pixels stay crisp. Values below 1 mean no
	// scaling.
	Scale int
}

// DefaultGridOptions lays out 8 columns with a 2-pixel gap at 4x scale.
func DefaultGridOptions() GridOptions {
	return GridOptions{Columns: 8, Padding: 2, Scale: 4}
}

// RenderGrid arranges flattened [0, 1] grayscale vectors of size
// rows*cols into a single grid image. Out-of-range values clamp.
func RenderGrid(vectors [][]float32, rows, cols int, opts GridOptions) (image.Image, error) {
	if len(vectors) == 0 {
		return nil, errors.New("no images to render")
	}
	if opts.Columns < 1 {
		opts.Columns = 1
	}
	size := rows * cols
	for i, v := range vectors {
		if len(v) != size {
			return nil, errors.Errorf("image %d has %d values, want %d", i, len(v), size)
		}
	}

	gridCols := opts.Columns
	gridRows := (len(vectors) + gridCols - 1) / gridCols
	width := gridCols*cols + (gridCols+1)*opts.Padding
	height := gridRows*rows + (gridRows+1)*opts.Padding

	sheet := image.NewGray(image.Rect(0, 0, width, height))
	for i, v := range vectors {
		cellX := (i % gridCols) * (cols + opts.Padding) // cell origin before leading pad
		cellY := (i / gridCols) * (rows + opts.Padding)
		originX := cellX + opts.Padding
		originY := cellY + opts.Padding
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				sheet.SetGray(originX+x, originY+y, color.Gray{Y: toByte(v[y*cols+x])})
			}
		}
	}

	if opts.Scale > 1 {
		return imaging.Resize(sheet, width*opts.Scale, height*opts.Scale, imaging.NearestNeighbor), nil
	}
	return sheet, nil
}

// SaveGrid renders the vectors and writes the sheet as a PNG file.
func SaveGrid(path string, vectors [][]float32, rows, cols int, opts GridOptions) error {
	img, err := RenderGrid(vectors, rows, cols, opts)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
