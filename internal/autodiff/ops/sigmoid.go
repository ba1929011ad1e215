package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// SigmoidOp represents the logistic squashing function:
// σ(x) = 1 / (1 + exp(-x)), mapping every element into (0, 1).
//
// Backward pass uses the identity dσ/dx = σ(x)·(1 - σ(x)), computed from
// the already-available forward output.
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad * σ(x) * (1 - σ(x)).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad := tensor.MustNewRaw(op.input.Shape())

	outData := op.output.Data()
	gradData := inputGrad.Data()
	outGradData := outputGrad.Data()
	for i, s := range outData {
		gradData[i] = outGradData[i] * s * (1 - s)
	}
	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the squashed tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }
