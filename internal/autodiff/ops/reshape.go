package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// ReshapeOp represents a reshape: output views the input's data with a
// different shape.
//
// Like TransposeOp, a reshape produces a new tensor identity and must be
// recorded so gradients propagate to the original tensor (e.g. a bias
// vector reshaped to a row for broadcasting).
//
// Backward pass: grad_input = outputGrad reshaped to the input shape.
type ReshapeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{input: input, output: output}
}

// Backward reshapes the output gradient back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.input.Shape())}
}

// Inputs returns the input tensor.
func (op *ReshapeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the reshaped tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor { return op.output }
