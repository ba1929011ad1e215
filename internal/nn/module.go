// Package nn implements the neural network building blocks for the advnet
// adversarial trainer:
//   - Module interface: base interface for all components
//   - Parameter: named trainable tensors
//   - Linear: fully connected layer
//   - LeakyReLU, Sigmoid: activation modules
//   - Sequential: container chaining layers
//
// Design follows PyTorch's nn.Module, adapted for Go generics.
package nn

import "github.com/advnet-ml/advnet/internal/tensor"

// Module is the base interface for all neural network components.
//
// Modules compose into architectures:
//
//	net := nn.NewSequential(
//	    nn.NewLinear(100, 1200, 0.05, 0.1, rng, backend),
//	    nn.NewLeakyReLU[B](0.2),
//	    ...
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all trainable parameters of this module,
	// including nested ones. Modules without parameters return nil.
	Parameters() []*Parameter[B]
}
