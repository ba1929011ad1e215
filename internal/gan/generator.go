package gan

import (
	"fmt"
	"math/rand"

	"github.com/advnet-ml/advnet/internal/nn"
	"github.com/advnet-ml/advnet/internal/tensor"
)

// Generator maps noise vectors to image-shaped vectors in (0, 1).
//
// Architecture: noise -> Linear -> LeakyReLU -> Linear -> LeakyReLU ->
// Linear -> Sigmoid -> image. Both hidden layers share the same width.
//
// The generator is stateless across invocations except through its owned
// parameters: the same input with unchanged parameters yields the same
// output.
type Generator[B tensor.Backend] struct {
	noiseDim int
	dataDim  int
	net      *nn.Sequential[B]
}

// NewGenerator builds a generator from the configuration, drawing weight
// initializations from rng.
func NewGenerator[B tensor.Backend](cfg Config, rng *rand.Rand, backend B) *Generator[B] {
	net := nn.NewSequential[B](
		nn.NewLinear(cfg.NoiseDim, cfg.GeneratorHidden, cfg.GeneratorWeightBound, cfg.BiasInit, rng, backend),
		nn.NewLeakyReLU[B](cfg.LeakySlope),
		nn.NewLinear(cfg.GeneratorHidden, cfg.GeneratorHidden, cfg.GeneratorWeightBound, cfg.BiasInit, rng, backend),
		nn.NewLeakyReLU[B](cfg.LeakySlope),
		nn.NewLinear(cfg.GeneratorHidden, cfg.DataDim, cfg.GeneratorWeightBound, cfg.BiasInit, rng, backend),
		nn.NewSigmoid[B](),
	)
	return &Generator[B]{
		noiseDim: cfg.NoiseDim,
		dataDim:  cfg.DataDim,
		net:      net,
	}
}

// Forward maps a noise batch [batch, noiseDim] to an image batch
// [batch, dataDim] with every component in (0, 1).
func (g *Generator[B]) Forward(noise *tensor.Tensor[B]) *tensor.Tensor[B] {
	shape := noise.Shape()
	if len(shape) != 2 || shape[1] != g.noiseDim {
		panic(fmt.Sprintf("Generator.Forward: expected noise shape [batch, %d], got %v", g.noiseDim, shape))
	}
	return g.net.Forward(noise)
}

// Parameters returns the generator's owned parameters.
func (g *Generator[B]) Parameters() []*nn.Parameter[B] {
	return g.net.Parameters()
}

// NoiseDim returns the expected noise vector dimension.
func (g *Generator[B]) NoiseDim() int {
	return g.noiseDim
}

// DataDim returns the produced image vector dimension.
func (g *Generator[B]) DataDim() int {
	return g.dataDim
}
