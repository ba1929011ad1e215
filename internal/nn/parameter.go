package nn

import "github.com/advnet-ml/advnet/internal/tensor"

// Parameter is a named trainable tensor owned by exactly one network.
//
// Parameters are created once before training and mutated in place by the
// optimizer on every step; they are never replaced during a run. Ownership
// is the unit of gradient isolation: an optimizer holds the parameters of
// one network and updates nothing else.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[B]
}

// NewParameter creates a trainable parameter from an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name (e.g. "fc1.weight").
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[B] {
	return p.tensor
}
