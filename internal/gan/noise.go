package gan

import (
	"math/rand"

	"github.com/advnet-ml/advnet/internal/tensor"
)

// NoiseSampler draws generator inputs from an isotropic standard normal.
// All randomness flows through the one *rand.Rand handed in at
// construction, so runs with the same seed draw the same noise sequence.
type NoiseSampler[B tensor.Backend] struct {
	noiseDim int
	rng      *rand.Rand
	backend  B
}

// NewNoiseSampler returns a sampler producing [batch, noiseDim] tensors.
func NewNoiseSampler[B tensor.Backend](noiseDim int, rng *rand.Rand, backend B) *NoiseSampler[B] {
	return &NoiseSampler[B]{
		noiseDim: noiseDim,
		rng:      rng,
		backend:  backend,
	}
}

// Sample draws a fresh batch of i.i.d. N(0, 1) noise vectors.
func (s *NoiseSampler[B]) Sample(batchSize int) *tensor.Tensor[B] {
	return tensor.Randn(tensor.Shape{batchSize, s.noiseDim}, s.rng, s.backend)
}

// NoiseDim returns the dimensionality of each noise vector.
func (s *NoiseSampler[B]) NoiseDim() int {
	return s.noiseDim
}
