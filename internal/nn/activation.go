package nn

import "github.com/advnet-ml/advnet/internal/tensor"

// LeakyReLUBackend is the interface for backends supporting the leaky
// rectifier activation.
type LeakyReLUBackend interface {
	LeakyReLU(x *tensor.RawTensor, slope float32) *tensor.RawTensor
}

// SigmoidBackend is the interface for backends supporting the logistic
// activation.
type SigmoidBackend interface {
	Sigmoid(x *tensor.RawTensor) *tensor.RawTensor
}

// LeakyReLU applies f(x) = max(x, slope·x) element-wise. Positive inputs
// pass unchanged; negative inputs are scaled by the slope instead of being
// zeroed, so some gradient always flows.
type LeakyReLU[B tensor.Backend] struct {
	slope float32
}

// NewLeakyReLU creates a LeakyReLU module with the given negative slope.
func NewLeakyReLU[B tensor.Backend](slope float32) *LeakyReLU[B] {
	return &LeakyReLU[B]{slope: slope}
}

// Forward applies the leaky rectifier.
func (r *LeakyReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	backend := input.Backend()
	lb, ok := any(backend).(LeakyReLUBackend)
	if !ok {
		panic("LeakyReLU: backend must implement LeakyReLU (use the autodiff backend)")
	}
	return tensor.New(lb.LeakyReLU(input.Raw(), r.slope), backend)
}

// Parameters returns nil (no trainable parameters).
func (r *LeakyReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Slope returns the negative-side slope.
func (r *LeakyReLU[B]) Slope() float32 {
	return r.slope
}

// Sigmoid applies σ(x) = 1 / (1 + exp(-x)) element-wise, squashing every
// value into (0, 1).
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a Sigmoid module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies the logistic function.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	backend := input.Backend()
	sb, ok := any(backend).(SigmoidBackend)
	if !ok {
		panic("Sigmoid: backend must implement Sigmoid (use the autodiff backend)")
	}
	return tensor.New(sb.Sigmoid(input.Raw()), backend)
}

// Parameters returns nil (no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}
