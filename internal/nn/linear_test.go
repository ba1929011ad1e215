package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advnet-ml/advnet/internal/autodiff"
	"github.com/advnet-ml/advnet/internal/backend/cpu"
	"github.com/advnet-ml/advnet/internal/nn"
	"github.com/advnet-ml/advnet/internal/tensor"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func newBackend() Backend {
	return autodiff.New(cpu.New())
}

func TestLinearForwardShape(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear(3, 5, 0.05, 0.1, rng, backend)

	input, err := tensor.FromSlice(make([]float32, 2*3), tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	assert.True(t, output.Shape().Equal(tensor.Shape{2, 5}),
		"output shape = %v, want [2 5]", output.Shape())
}

func TestLinearForwardValues(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear(2, 2, 0.05, 0, rng, backend)

	// Overwrite the random init with a known weight matrix [out, in].
	copy(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4})

	input, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	// y = x @ W^T: [1,1] @ [[1,3],[2,4]] = [3, 7]
	assert.InDelta(t, 3, output.At(0, 0), 1e-6)
	assert.InDelta(t, 7, output.At(0, 1), 1e-6)
}

func TestLinearInitBounds(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(42))
	bound := float32(0.005)
	layer := nn.NewLinear(100, 50, bound, 0.1, rng, backend)

	for i, w := range layer.Weight().Tensor().Data() {
		assert.LessOrEqual(t, w, bound, "weight %d above bound", i)
		assert.GreaterOrEqual(t, w, -bound, "weight %d below bound", i)
	}
	for i, b := range layer.Bias().Tensor().Data() {
		assert.Equal(t, float32(0.1), b, "bias %d", i)
	}
}

func TestLinearParameters(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear(4, 3, 0.05, 0.1, rng, backend)

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{3, 4}))
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{3}))
}

func TestLinearForwardPanicsOnWrongShape(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))
	layer := nn.NewLinear(3, 5, 0.05, 0.1, rng, backend)

	input, err := tensor.FromSlice(make([]float32, 2*4), tensor.Shape{2, 4}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() { layer.Forward(input) })
}

func TestLeakyReLUForward(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLeakyReLU[Backend](0.2)

	input, err := tensor.FromSlice([]float32{-1, 0, 2}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	assert.InDelta(t, -0.2, output.Data()[0], 1e-6)
	assert.InDelta(t, 0, output.Data()[1], 1e-6)
	assert.InDelta(t, 2, output.Data()[2], 1e-6)
	assert.Empty(t, layer.Parameters())
}

func TestSigmoidForward(t *testing.T) {
	backend := newBackend()
	layer := nn.NewSigmoid[Backend]()

	input, err := tensor.FromSlice([]float32{0, 100, -100}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	assert.InDelta(t, 0.5, output.Data()[0], 1e-6)
	assert.InDelta(t, 1, output.Data()[1], 1e-6)
	assert.InDelta(t, 0, output.Data()[2], 1e-6)
}

func TestSequentialChainsAndCollectsParameters(t *testing.T) {
	backend := newBackend()
	rng := rand.New(rand.NewSource(1))
	model := nn.NewSequential[Backend](
		nn.NewLinear(4, 8, 0.05, 0.1, rng, backend),
		nn.NewLeakyReLU[Backend](0.2),
		nn.NewLinear(8, 2, 0.05, 0.1, rng, backend),
	)

	input, err := tensor.FromSlice(make([]float32, 3*4), tensor.Shape{3, 4}, backend)
	require.NoError(t, err)

	output := model.Forward(input)
	assert.True(t, output.Shape().Equal(tensor.Shape{3, 2}))
	assert.Len(t, model.Parameters(), 4)
}
