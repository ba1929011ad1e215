package optim

import (
	"github.com/advnet-ml/advnet/internal/nn"
	"github.com/advnet-ml/advnet/internal/tensor"
)

// SGD implements scheduled momentum gradient descent.
//
// Update rule per parameter:
//
//	velocity = momentum(step) * velocity - lr(step) * gradient
//	param    = param + velocity
//
// where lr and momentum are read from the schedules at the optimizer's
// current step counter, which then advances by one. Velocities persist
// across steps and start at zero.
//
// The optimizer updates only the parameters it was constructed with.
// Gradients present in the map for other tensors are ignored, which is
// what keeps the generator untouched during a discriminator step even
// though the backward pass flowed through both networks.
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         LRSchedule
	momentum   MomentumSchedule
	step       int64
	velocities map[*nn.Parameter[B]][]float32
}

// SGDConfig holds the schedules for an SGD optimizer.
type SGDConfig struct {
	LR       LRSchedule       // required
	Momentum MomentumSchedule // required
}

// NewSGD creates a momentum SGD optimizer owning the given parameters.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig) *SGD[B] {
	if config.LR == nil {
		panic("optim.NewSGD: LR schedule is required")
	}
	if config.Momentum == nil {
		panic("optim.NewSGD: Momentum schedule is required")
	}
	return &SGD[B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[B]][]float32, len(params)),
	}
}

// Step applies one scheduled momentum update to every owned parameter
// that has a gradient in the map, then advances the step counter.
func (s *SGD[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	lr := s.lr.LearningRate(s.step)
	mu := s.momentum.Momentum(s.step)

	for _, param := range s.params {
		grad, ok := grads[param.Tensor().Raw()]
		if !ok {
			// Parameter did not take part in the forward pass.
			continue
		}

		velocity, ok := s.velocities[param]
		if !ok {
			velocity = make([]float32, param.Tensor().NumElements())
			s.velocities[param] = velocity
		}

		paramData := param.Tensor().Data()
		gradData := grad.Data()
		for i := range paramData {
			velocity[i] = mu*velocity[i] - lr*gradData[i]
			paramData[i] += velocity[i]
		}
	}

	s.step++
}

// StepCount returns the number of updates applied so far.
func (s *SGD[B]) StepCount() int64 {
	return s.step
}

// LearningRate returns the learning rate the next Step will use.
func (s *SGD[B]) LearningRate() float32 {
	return s.lr.LearningRate(s.step)
}

// Momentum returns the momentum coefficient the next Step will use.
func (s *SGD[B]) Momentum() float32 {
	return s.momentum.Momentum(s.step)
}
