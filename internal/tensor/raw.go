package tensor

import "fmt"

// RawTensor is the low-level tensor representation: a flat float32 buffer
// with a shape and row-major strides. All numerical state in this module
// (parameters, activations, gradients) is float32.
//
// RawTensor identity matters: the autodiff tape keys recorded operations
// and accumulated gradients by *RawTensor pointer. Code that needs a
// detached copy must Clone.
type RawTensor struct {
	data   []float32
	shape  Shape
	stride []int
}

// NewRaw creates a zero-initialized RawTensor with the given shape.
func NewRaw(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]float32, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// MustNewRaw is NewRaw that panics on invalid shapes. Used internally by
// backends where the shape has already been validated.
func MustNewRaw(shape Shape) *RawTensor {
	r, err := NewRaw(shape)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's row-major memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Data returns the backing float32 slice. Modifications write through to
// the tensor.
func (r *RawTensor) Data() []float32 {
	return r.data
}

// Clone returns a deep copy with its own buffer.
func (r *RawTensor) Clone() *RawTensor {
	clone := MustNewRaw(r.shape)
	copy(clone.data, r.data)
	return clone
}

// WithShape returns a view over the same buffer with a different shape.
// The element counts must match.
func (r *RawTensor) WithShape(shape Shape) *RawTensor {
	if shape.NumElements() != r.NumElements() {
		panic(fmt.Sprintf("reshape: cannot view %v as %v (%d vs %d elements)",
			r.shape, shape, r.NumElements(), shape.NumElements()))
	}
	return &RawTensor{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}
}

// String returns a human-readable representation.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor%v", r.shape)
}
