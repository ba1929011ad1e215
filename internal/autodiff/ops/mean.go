package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// MeanOp represents the full reduction to the arithmetic mean:
// output = sum(x) / N as a single-element tensor. Used to average
// per-sample loss terms over a batch.
//
// Backward pass: every input element contributed 1/N to the output, so
// grad_input[i] = outputGrad / N.
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

// Backward spreads the scalar output gradient uniformly over the input.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad := tensor.MustNewRaw(op.input.Shape())

	g := outputGrad.Data()[0] / float32(op.input.NumElements())
	gradData := inputGrad.Data()
	for i := range gradData {
		gradData[i] = g
	}
	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the single-element mean tensor.
func (op *MeanOp) Output() *tensor.RawTensor { return op.output }
