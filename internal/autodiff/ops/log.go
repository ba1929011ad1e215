package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// LogEpsOp represents the epsilon-floored natural logarithm:
// output = log(input + epsilon).
//
// The floor keeps the logarithm away from its singularity when the input
// can reach zero, as discriminator probabilities do early in adversarial
// training. log(0) would produce -Inf losses and NaN gradients; with the
// floor the loss stays finite outright instead of being detected after
// the fact.
//
// Backward pass: grad_input = outputGrad / (input + epsilon).
type LogEpsOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	epsilon float32
}

// NewLogEpsOp creates a new LogEpsOp.
func NewLogEpsOp(input, output *tensor.RawTensor, epsilon float32) *LogEpsOp {
	return &LogEpsOp{input: input, output: output, epsilon: epsilon}
}

// Backward computes grad_input = outputGrad / (input + epsilon).
func (op *LogEpsOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	inputGrad := tensor.MustNewRaw(op.input.Shape())

	inputData := op.input.Data()
	gradData := inputGrad.Data()
	outGradData := outputGrad.Data()
	for i, x := range inputData {
		gradData[i] = outGradData[i] / (x + op.epsilon)
	}
	return []*tensor.RawTensor{inputGrad}
}

// Inputs returns the input tensor.
func (op *LogEpsOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the log tensor.
func (op *LogEpsOp) Output() *tensor.RawTensor { return op.output }
