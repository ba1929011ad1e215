// Package cpu implements the pure-Go CPU backend. Matrix multiplication is
// delegated to gonum's float32 BLAS; everything else is plain loops.
package cpu

import (
	"fmt"

	"github.com/advnet-ml/advnet/internal/tensor"
)

// Backend implements tensor.Backend on the CPU.
type Backend struct{}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "CPU"
}

// Add performs element-wise addition with broadcasting.
func (c *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (c *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (c *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (c *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryOp("div", a, b, func(x, y float32) float32 { return x / y })
}

// Reshape returns a view over the same buffer with a new shape.
func (c *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	return t.WithShape(newShape)
}

// Transpose returns the 2D transpose of t.
func (c *Backend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: expected 2D tensor, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]
	out := tensor.MustNewRaw(tensor.Shape{cols, rows})
	src, dst := t.Data(), out.Data()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
	return out
}

// AddScalar adds a scalar to every element.
func (c *Backend) AddScalar(t *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	out := tensor.MustNewRaw(t.Shape())
	src, dst := t.Data(), out.Data()
	for i, v := range src {
		dst[i] = v + scalar
	}
	return out
}

// MulScalar multiplies every element by a scalar.
func (c *Backend) MulScalar(t *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	out := tensor.MustNewRaw(t.Shape())
	src, dst := t.Data(), out.Data()
	for i, v := range src {
		dst[i] = v * scalar
	}
	return out
}

// binaryOp applies f element-wise over a and b with NumPy-style
// broadcasting. Same-shape inputs take the tight-loop fast path.
func binaryOp(name string, a, b *tensor.RawTensor, f func(x, y float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	out := tensor.MustNewRaw(outShape)

	if !needsBroadcast {
		aData, bData, dst := a.Data(), b.Data(), out.Data()
		for i := range dst {
			dst[i] = f(aData[i], bData[i])
		}
		return out
	}

	broadcastBinary(out, a, b, f)
	return out
}

// broadcastBinary walks every output element and maps its coordinates back
// into a and b, treating size-1 dimensions as pinned to index 0.
func broadcastBinary(out, a, b *tensor.RawTensor, f func(x, y float32) float32) {
	outShape := out.Shape()
	outStrides := outShape.ComputeStrides()
	aIdx := newBroadcastIndexer(a.Shape(), outShape)
	bIdx := newBroadcastIndexer(b.Shape(), outShape)

	aData, bData, dst := a.Data(), b.Data(), out.Data()
	coords := make([]int, len(outShape))
	for i := range dst {
		rem := i
		for d := range coords {
			coords[d] = rem / outStrides[d]
			rem %= outStrides[d]
		}
		dst[i] = f(aData[aIdx.offset(coords)], bData[bIdx.offset(coords)])
	}
}

// broadcastIndexer maps output coordinates to a flat offset in a tensor
// being broadcast to the output shape.
type broadcastIndexer struct {
	strides []int // per output dimension; 0 where the input dimension is 1
}

func newBroadcastIndexer(in, out tensor.Shape) broadcastIndexer {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	shift := len(out) - len(in)
	for d := range out {
		if d < shift {
			continue // missing leading dimension, stride stays 0
		}
		if in[d-shift] == 1 {
			continue // broadcast dimension, stride stays 0
		}
		strides[d] = inStrides[d-shift]
	}
	return broadcastIndexer{strides: strides}
}

func (bi broadcastIndexer) offset(coords []int) int {
	offset := 0
	for d, c := range coords {
		offset += c * bi.strides[d]
	}
	return offset
}
