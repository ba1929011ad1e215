// Package ops defines the differentiable operations recorded by the
// gradient tape.
//
// Each operation stores the tensors that took part in its forward pass and
// knows how to turn the gradient of its output into gradients of its
// inputs (reverse-mode chain rule). One file per operation.
package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// It records inputs and output during the forward pass and computes input
// gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the gradient of the
	// output. Returns one gradient per input tensor, in input order.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors of this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
