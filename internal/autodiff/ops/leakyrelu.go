package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// LeakyReLUOp represents the leaky rectifier: output = max(x, slope*x),
// with 0 < slope < 1. Positive values pass unchanged; negative values are
// scaled by slope, which keeps a small gradient flowing where a plain
// ReLU would be dead.
//
// Backward pass: d/dx = 1 where x > 0, slope elsewhere.
type LeakyReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	slope  float32
}

// NewLeakyReLUOp creates a new LeakyReLUOp.
func NewLeakyReLUOp(input, output *tensor.RawTensor, slope float32) *LeakyReLUOp {
	return &LeakyReLUOp{input: input, output: output, slope: slope}
}

// Backward scales the output gradient by 1 or slope depending on the sign
// of the forward input.
func (op *LeakyReLUOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad := tensor.MustNewRaw(op.input.Shape())

	inputData := op.input.Data()
	gradData := inputGrad.Data()
	outGradData := outputGrad.Data()
	for i, x := range inputData {
		if x > 0 {
			gradData[i] = outGradData[i]
		} else {
			gradData[i] = outGradData[i] * op.slope
		}
	}
	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *LeakyReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the activated tensor.
func (op *LeakyReLUOp) Output() *tensor.RawTensor { return op.output }
