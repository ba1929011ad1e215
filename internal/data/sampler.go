package data

import (
	"math/rand"

	"github.com/advnet-ml/advnet/internal/tensor"
)

// Sampler draws fixed-size mini-batches from a Dataset in shuffled order.
// It walks a random permutation of the dataset and reshuffles whenever the
// permutation is exhausted, so every example is visited once per pass and
// batches never straddle two passes with duplicate examples.
type Sampler struct {
	dataset   *Dataset
	batchSize int
	rng       *rand.Rand
	perm      []int
	pos       int
}

// NewSampler creates a sampler over dataset with the given batch size.
// Panics if the dataset holds fewer examples than one batch.
func NewSampler(dataset *Dataset, batchSize int, rng *rand.Rand) *Sampler {
	if dataset.Len() < batchSize {
		panic("data: dataset smaller than one batch")
	}
	s := &Sampler{
		dataset:   dataset,
		batchSize: batchSize,
		rng:       rng,
	}
	s.reshuffle()
	return s
}

func (s *Sampler) reshuffle() {
	s.perm = s.rng.Perm(s.dataset.Len())
	s.pos = 0
}

// Next returns the indices of the next batch.
func (s *Sampler) Next() []int {
	if s.pos+s.batchSize > len(s.perm) {
		s.reshuffle()
	}
	batch := s.perm[s.pos : s.pos+s.batchSize]
	s.pos += s.batchSize
	return batch
}

// NextBatch materializes the next batch as a [batchSize, vectorDim] tensor.
func NextBatch[B tensor.Backend](s *Sampler, backend B) *tensor.Tensor[B] {
	indices := s.Next()
	dim := s.dataset.VectorDim()
	buf := make([]float32, len(indices)*dim)
	for i, idx := range indices {
		copy(buf[i*dim:(i+1)*dim], s.dataset.Vector(idx))
	}
	t, err := tensor.FromSlice(buf, tensor.Shape{len(indices), dim}, backend)
	if err != nil {
		panic(err)
	}
	return t
}

// BatchSize returns the configured batch size.
func (s *Sampler) BatchSize() int {
	return s.batchSize
}
