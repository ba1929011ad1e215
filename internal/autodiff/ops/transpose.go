package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// TransposeOp represents a 2D transpose: output = inputᵀ.
//
// The transpose produces a new tensor, so it must be recorded: without it,
// gradients computed for the transposed view would never reach the
// original tensor. This matters for Linear, which transposes its weight
// parameter on every forward pass.
//
// Backward pass: grad_input = outputGradᵀ.
type TransposeOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTransposeOp creates a new TransposeOp.
func NewTransposeOp(input, output *tensor.RawTensor) *TransposeOp {
	return &TransposeOp{input: input, output: output}
}

// Backward transposes the output gradient back to the input orientation.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Transpose(outputGrad)}
}

// Inputs returns the input tensor.
func (op *TransposeOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the transposed tensor.
func (op *TransposeOp) Output() *tensor.RawTensor { return op.output }
