package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advnet-ml/advnet/internal/autodiff"
	"github.com/advnet-ml/advnet/internal/backend/cpu"
	"github.com/advnet-ml/advnet/internal/tensor"
)

type Backend = *autodiff.Backend[*cpu.Backend]

func newBackend() Backend {
	return autodiff.New(cpu.New())
}

func seedGrad(values ...float32) *tensor.RawTensor {
	seed := tensor.MustNewRaw(tensor.Shape{len(values)})
	copy(seed.Data(), values)
	return seed
}

func TestTapeRecordsOnlyWhileRecording(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	x.Add(y)
	assert.Equal(t, 0, backend.Tape().NumOps(), "op recorded while tape was off")

	backend.Tape().StartRecording()
	x.Add(y)
	backend.Tape().StopRecording()
	assert.Equal(t, 1, backend.Tape().NumOps())

	x.Add(y)
	assert.Equal(t, 1, backend.Tape().NumOps(), "op recorded after StopRecording")
}

func TestBackwardAdd(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	x.Add(y)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(seedGrad(1, 1), backend)
	require.Contains(t, grads, x.Raw())
	require.Contains(t, grads, y.Raw())
	assert.Equal(t, []float32{1, 1}, grads[x.Raw()].Data())
	assert.Equal(t, []float32{1, 1}, grads[y.Raw()].Data())
}

func TestBackwardMul(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{2, 3}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{5, 7}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	x.Mul(y)
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(seedGrad(1, 1), backend)
	// d(x*y)/dx = y, d(x*y)/dy = x
	assert.Equal(t, []float32{5, 7}, grads[x.Raw()].Data())
	assert.Equal(t, []float32{2, 3}, grads[y.Raw()].Data())
}

func TestBackwardBroadcastReduces(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	bias, err := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	x.Add(bias)
	backend.Tape().StopRecording()

	seed := tensor.MustNewRaw(tensor.Shape{2, 3})
	for i := range seed.Data() {
		seed.Data()[i] = 1
	}
	grads := backend.Tape().Backward(seed, backend)

	biasGrad := grads[bias.Raw()]
	require.NotNil(t, biasGrad)
	require.True(t, biasGrad.Shape().Equal(tensor.Shape{1, 3}),
		"bias gradient shape = %v, want [1 3]", biasGrad.Shape())
	// Each bias element feeds both rows, so its gradient is the column sum.
	assert.Equal(t, []float32{2, 2, 2}, biasGrad.Data())
}

func TestBackwardMatMul(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	x.MatMul(y)
	backend.Tape().StopRecording()

	seed := tensor.MustNewRaw(tensor.Shape{2, 2})
	for i := range seed.Data() {
		seed.Data()[i] = 1
	}
	grads := backend.Tape().Backward(seed, backend)

	// dL/dX = seed @ Y^T, dL/dY = X^T @ seed with seed all ones.
	assert.Equal(t, []float32{11, 15, 11, 15}, grads[x.Raw()].Data())
	assert.Equal(t, []float32{4, 4, 6, 6}, grads[y.Raw()].Data())
}

func TestBackwardSigmoid(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{0}, tensor.Shape{1}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	backend.Sigmoid(x.Raw())
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(seedGrad(1), backend)
	// sigmoid'(0) = 0.25
	assert.InDelta(t, 0.25, grads[x.Raw()].Data()[0], 1e-6)
}

func TestLogEpsFiniteAtZero(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{0, 0.5, 1}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	out := backend.LogEps(x.Raw(), 0)
	for i, v := range out.Data() {
		assert.False(t, math.IsInf(float64(v), 0) || math.IsNaN(float64(v)),
			"LogEps output not finite at index %d: %v", i, v)
	}
	assert.InDelta(t, math.Log(0.5+autodiff.DefaultLogEps), float64(out.Data()[1]), 1e-6)
}

func TestBackwardMean(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	out := backend.Mean(x.Raw())
	backend.Tape().StopRecording()

	assert.InDelta(t, 2.5, out.Data()[0], 1e-6)

	grads := backend.Tape().Backward(seedGrad(1), backend)
	for i, g := range grads[x.Raw()].Data() {
		assert.InDelta(t, 0.25, g, 1e-6, "mean gradient at index %d", i)
	}
}

// TestGradientCheckComposite verifies the chained gradient of
// f(x) = mean(log(sigmoid(x @ w) + eps)) against a central finite
// difference on each weight.
func TestGradientCheckComposite(t *testing.T) {
	forward := func(backend Backend, xData, wData []float32) float32 {
		x, err := tensor.FromSlice(xData, tensor.Shape{2, 3}, backend)
		require.NoError(t, err)
		w, err := tensor.FromSlice(wData, tensor.Shape{3, 1}, backend)
		require.NoError(t, err)
		h := backend.Sigmoid(x.MatMul(w).Raw())
		return backend.Mean(backend.LogEps(h, 0)).Data()[0]
	}

	xData := []float32{0.5, -1.0, 0.25, 1.5, 0.75, -0.5}
	wData := []float32{0.3, -0.2, 0.8}

	backend := newBackend()
	x, err := tensor.FromSlice(xData, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	w, err := tensor.FromSlice(wData, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	h := backend.Sigmoid(x.MatMul(w).Raw())
	backend.Mean(backend.LogEps(h, 0))
	backend.Tape().StopRecording()

	grads := backend.Tape().Backward(seedGrad(1), backend)
	analytic := grads[w.Raw()]
	require.NotNil(t, analytic)

	const h32 = 1e-2
	for i := range wData {
		plus := append([]float32(nil), wData...)
		minus := append([]float32(nil), wData...)
		plus[i] += h32
		minus[i] -= h32
		numeric := (forward(newBackend(), xData, plus) - forward(newBackend(), xData, minus)) / (2 * h32)
		assert.InDelta(t, numeric, analytic.Data()[i], 1e-3, "weight %d", i)
	}
}

// TestGradientCheckPerOp sweeps each differentiable op with a central
// finite difference on every input element. LeakyReLU inputs stay away
// from the kink at zero, where the finite difference is not valid.
func TestGradientCheckPerOp(t *testing.T) {
	xData := []float32{0.6, -0.8, 1.2, -0.3}
	yData := []float32{1.5, 0.7, -0.9, 2.0}
	shape := tensor.Shape{2, 2}

	cases := []struct {
		name    string
		forward func(b Backend, x, y *tensor.RawTensor) *tensor.RawTensor
	}{
		{"sub", func(b Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(b.Sub(x, y))
		}},
		{"div", func(b Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(b.Div(x, y))
		}},
		{"leakyrelu", func(b Backend, x, _ *tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(b.LeakyReLU(x, 0.2))
		}},
		{"transpose", func(b Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(b.Mul(b.Transpose(x), y))
		}},
		{"reshape", func(b Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(b.Mul(b.Reshape(x, tensor.Shape{4}), b.Reshape(y, tensor.Shape{4})))
		}},
		{"matmul", func(b Backend, x, y *tensor.RawTensor) *tensor.RawTensor {
			return b.Mean(b.MatMul(x, y))
		}},
	}

	eval := func(c func(Backend, *tensor.RawTensor, *tensor.RawTensor) *tensor.RawTensor, xs, ys []float32) float32 {
		b := newBackend()
		x := tensor.MustNewRaw(shape)
		copy(x.Data(), xs)
		y := tensor.MustNewRaw(shape)
		copy(y.Data(), ys)
		return c(b, x, y).Data()[0]
	}

	const h = 1e-2
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBackend()
			x := tensor.MustNewRaw(shape)
			copy(x.Data(), xData)
			y := tensor.MustNewRaw(shape)
			copy(y.Data(), yData)

			b.Tape().StartRecording()
			tc.forward(b, x, y)
			b.Tape().StopRecording()
			grads := b.Tape().Backward(seedGrad(1), b)

			for _, in := range []struct {
				raw  *tensor.RawTensor
				data []float32
				atX  bool
			}{{x, xData, true}, {y, yData, false}} {
				analytic, ok := grads[in.raw]
				if !ok {
					continue
				}
				for i := range in.data {
					plus := append([]float32(nil), in.data...)
					minus := append([]float32(nil), in.data...)
					plus[i] += h
					minus[i] -= h
					var fPlus, fMinus float32
					if in.atX {
						fPlus = eval(tc.forward, plus, yData)
						fMinus = eval(tc.forward, minus, yData)
					} else {
						fPlus = eval(tc.forward, xData, plus)
						fMinus = eval(tc.forward, xData, minus)
					}
					numeric := (fPlus - fMinus) / (2 * h)
					assert.InDelta(t, numeric, analytic.Data()[i], 1e-2,
						"element %d (input x=%v)", i, in.atX)
				}
			}
		})
	}
}

func TestBackwardDisablesRecording(t *testing.T) {
	backend := newBackend()
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	x.Add(y)
	numOps := backend.Tape().NumOps()
	backend.Tape().Backward(seedGrad(1, 1), backend)

	assert.Equal(t, numOps, backend.Tape().NumOps(),
		"backward pass added ops to the tape")
	assert.True(t, backend.Tape().IsRecording(),
		"backward pass should restore the recording flag")
}
