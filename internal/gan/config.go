// Package gan defines the two adversarial networks, their training
// objective, and the noise source feeding the generator.
package gan

import "github.com/advnet-ml/advnet/internal/optim"

// Default hyperparameters. The schedule constants (notably the decay base
// 1.000004 and the saturation step 250) are inherited from earlier
// adversarial-training work and have not been independently validated;
// treat them as a working configuration, not tuned values.
const (
	// DefaultNoiseDim is the generator input dimension.
	DefaultNoiseDim = 100

	// DefaultDataDim is the flattened 28x28 image dimension.
	DefaultDataDim = 784

	// DefaultGeneratorHidden is the width of both generator hidden layers.
	DefaultGeneratorHidden = 1200

	// DefaultDiscriminatorHidden is the width of both discriminator hidden
	// layers. The discriminator is deliberately narrower than the
	// generator so it does not overpower it early in training.
	DefaultDiscriminatorHidden = 200

	// DefaultGeneratorWeightBound bounds the generator's uniform weight
	// initialization interval.
	DefaultGeneratorWeightBound = 0.05

	// DefaultDiscriminatorWeightBound bounds the discriminator's uniform
	// weight initialization interval, an order of magnitude tighter than
	// the generator's.
	DefaultDiscriminatorWeightBound = 0.005

	// DefaultBiasInit is the constant bias initialization. Slightly
	// positive so early pre-activations sit on the full-gradient side of
	// the leaky rectifier.
	DefaultBiasInit = 0.1

	// DefaultLeakySlope is the negative-side slope of the leaky rectifier.
	DefaultLeakySlope = 0.2

	// DefaultLogEps floors probabilities before the logarithm in both
	// losses, preventing -Inf/NaN outright. The reference formulation
	// took logs of raw probabilities; gradients very close to 0 and 1
	// therefore differ slightly from it.
	DefaultLogEps = 1e-7
)

// Config collects the architecture hyperparameters of one
// generator/discriminator pair.
type Config struct {
	NoiseDim                 int
	DataDim                  int
	GeneratorHidden          int
	DiscriminatorHidden      int
	GeneratorWeightBound     float32
	DiscriminatorWeightBound float32
	BiasInit                 float32
	LeakySlope               float32
	LogEps                   float32
}

// DefaultConfig returns the reference architecture configuration.
func DefaultConfig() Config {
	return Config{
		NoiseDim:                 DefaultNoiseDim,
		DataDim:                  DefaultDataDim,
		GeneratorHidden:          DefaultGeneratorHidden,
		DiscriminatorHidden:      DefaultDiscriminatorHidden,
		GeneratorWeightBound:     DefaultGeneratorWeightBound,
		DiscriminatorWeightBound: DefaultDiscriminatorWeightBound,
		BiasInit:                 DefaultBiasInit,
		LeakySlope:               DefaultLeakySlope,
		LogEps:                   DefaultLogEps,
	}
}

// DefaultLRSchedule returns the reference learning-rate decay, shared in
// form by both networks but driven by each network's own step counter.
func DefaultLRSchedule() optim.ExpDecay {
	return optim.ExpDecay{Initial: 0.01, Decay: 1.000004, Floor: 1e-6}
}

// DefaultMomentumSchedule returns the reference momentum ramp.
func DefaultMomentumSchedule() optim.LinearRamp {
	return optim.LinearRamp{Initial: 0.5, Final: 0.7, Saturation: 250}
}
