package gan

import (
	"fmt"

	"github.com/advnet-ml/advnet/internal/tensor"
)

// lossBackend is the subset of the autodiff decorator's surface the
// objectives need beyond plain tensor.Backend.
type lossBackend interface {
	LogEps(x *tensor.RawTensor, epsilon float32) *tensor.RawTensor
	Mean(x *tensor.RawTensor) *tensor.RawTensor
}

func mustLossBackend[B tensor.Backend](b B) lossBackend {
	lb, ok := any(b).(lossBackend)
	if !ok {
		panic(fmt.Sprintf("gan: backend %q does not support LogEps/Mean", b.Name()))
	}
	return lb
}

func logEps[B tensor.Backend](t *tensor.Tensor[B], epsilon float32) *tensor.Tensor[B] {
	lb := mustLossBackend(t.Backend())
	return tensor.New(lb.LogEps(t.Raw(), epsilon), t.Backend())
}

func mean[B tensor.Backend](t *tensor.Tensor[B]) *tensor.Tensor[B] {
	lb := mustLossBackend(t.Backend())
	return tensor.New(lb.Mean(t.Raw()), t.Backend())
}

// DiscriminatorLoss computes the discriminator's objective
//
//	L_D = -mean(log(D(x)) + log(1 - D(G(z))))
//
// from the scores dReal = D(x) and dFake = D(G(z)), both [batch, 1].
// Every log goes through an epsilon floor so the loss stays finite even
// when the discriminator saturates to exactly 0 or 1.
func DiscriminatorLoss[B tensor.Backend](dReal, dFake *tensor.Tensor[B], epsilon float32) *tensor.Tensor[B] {
	realTerm := logEps(dReal, epsilon)
	// 1 - dFake, expressed through scalar ops so the gradient flows back
	// through dFake with sign -1.
	fakeTerm := logEps(dFake.MulScalar(-1).AddScalar(1), epsilon)
	return mean(realTerm.Add(fakeTerm)).MulScalar(-1)
}

// GeneratorLoss computes the non-saturating generator objective
//
//	L_G = -mean(log(D(G(z))))
//
// which maximizes the discriminator's score on generated samples instead
// of minimizing log(1 - D(G(z))). The gradient of the minimax form
// vanishes early in training when the discriminator confidently rejects
// generated samples; this form does not.
func GeneratorLoss[B tensor.Backend](dFake *tensor.Tensor[B], epsilon float32) *tensor.Tensor[B] {
	return mean(logEps(dFake, epsilon)).MulScalar(-1)
}
