package gan

import (
	"fmt"
	"math/rand"

	"github.com/advnet-ml/advnet/internal/nn"
	"github.com/advnet-ml/advnet/internal/tensor"
)

// Discriminator maps image-shaped vectors to a scalar in (0, 1),
// interpreted as the probability that the input is real.
//
// Same shape as the generator but with narrower hidden layers and a
// tighter weight initialization interval.
//
// A training iteration scores the discriminator twice, once on real data
// and once on generator output. Both calls go through this one object and
// therefore through the one underlying parameter set; that sharing is a
// correctness requirement of the objective, not an implementation detail.
type Discriminator[B tensor.Backend] struct {
	dataDim int
	net     *nn.Sequential[B]
}

// NewDiscriminator builds a discriminator from the configuration, drawing
// weight initializations from rng.
func NewDiscriminator[B tensor.Backend](cfg Config, rng *rand.Rand, backend B) *Discriminator[B] {
	net := nn.NewSequential[B](
		nn.NewLinear(cfg.DataDim, cfg.DiscriminatorHidden, cfg.DiscriminatorWeightBound, cfg.BiasInit, rng, backend),
		nn.NewLeakyReLU[B](cfg.LeakySlope),
		nn.NewLinear(cfg.DiscriminatorHidden, cfg.DiscriminatorHidden, cfg.DiscriminatorWeightBound, cfg.BiasInit, rng, backend),
		nn.NewLeakyReLU[B](cfg.LeakySlope),
		nn.NewLinear(cfg.DiscriminatorHidden, 1, cfg.DiscriminatorWeightBound, cfg.BiasInit, rng, backend),
		nn.NewSigmoid[B](),
	)
	return &Discriminator[B]{
		dataDim: cfg.DataDim,
		net:     net,
	}
}

// Forward scores a batch [batch, dataDim], returning probabilities with
// shape [batch, 1], each strictly inside (0, 1).
func (d *Discriminator[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != d.dataDim {
		panic(fmt.Sprintf("Discriminator.Forward: expected input shape [batch, %d], got %v", d.dataDim, shape))
	}
	return d.net.Forward(input)
}

// Parameters returns the discriminator's owned parameters.
func (d *Discriminator[B]) Parameters() []*nn.Parameter[B] {
	return d.net.Parameters()
}

// DataDim returns the expected input vector dimension.
func (d *Discriminator[B]) DataDim() int {
	return d.dataDim
}
