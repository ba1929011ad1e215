package nn

import (
	"math/rand"

	"github.com/advnet-ml/advnet/internal/tensor"
)

// UniformInterval initializes a tensor with values drawn uniformly from
// the symmetric interval [-bound, bound].
//
// Small symmetric intervals are the standard initialization for shallow
// adversarial nets; the bound controls how strong each network starts out
// relative to the other.
func UniformInterval[B tensor.Backend](shape tensor.Shape, bound float32, rng *rand.Rand, backend B) *tensor.Tensor[B] {
	return tensor.Uniform(shape, -bound, bound, rng, backend)
}

// Constant initializes a tensor filled with a single value. A small
// positive constant is the usual bias initialization with leaky
// rectifiers: it keeps early pre-activations positive so gradients flow
// at full strength from the first step.
func Constant[B tensor.Backend](shape tensor.Shape, value float32, backend B) *tensor.Tensor[B] {
	return tensor.Full(shape, value, backend)
}

// Zeros creates a zero-filled tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[B] {
	return tensor.Zeros(shape, backend)
}
