// Package autodiff implements reverse-mode automatic differentiation as a
// backend decorator.
//
// Backend[B] wraps any tensor.Backend and records every operation executed
// through it on a GradientTape. Walking the tape in reverse applies the
// chain rule and yields a gradient for every tensor that took part in the
// forward pass.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	loss := computeLoss(backend, ...)
//	grads := backend.Tape().Backward(seedGrad, backend)
package autodiff

import (
	"math"

	"github.com/advnet-ml/advnet/internal/autodiff/ops"
	"github.com/advnet-ml/advnet/internal/tensor"
)

// DefaultLogEps is the epsilon floor applied by LogEps when callers pass
// a non-positive epsilon.
const DefaultLogEps = 1e-7

// Backend wraps a tensor.Backend and adds gradient tracking.
//
// The inner backend performs the actual computation; this decorator only
// records operations while the tape is recording.
type Backend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// New creates an autodiff Backend wrapping the given backend.
func New[B tensor.Backend](inner B) *Backend[B] {
	return &Backend[B]{
		inner: inner,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for recording control.
func (b *Backend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *Backend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *Backend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Add performs element-wise addition and records the operation.
func (b *Backend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(x, y)
	b.tape.Record(ops.NewAddOp(x, y, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *Backend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(x, y)
	b.tape.Record(ops.NewSubOp(x, y, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *Backend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(x, y)
	b.tape.Record(ops.NewMulOp(x, y, result))
	return result
}

// Div performs element-wise division and records the operation.
func (b *Backend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(x, y)
	b.tape.Record(ops.NewDivOp(x, y, result))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *Backend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(x, y)
	b.tape.Record(ops.NewMatMulOp(x, y, result))
	return result
}

// Reshape reshapes a tensor and records the operation. Recording is
// required: the reshaped view is a new tensor identity, and without the
// op gradients would never reach the original (e.g. a Linear bias
// reshaped to a row for broadcasting).
func (b *Backend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(t, newShape)
	b.tape.Record(ops.NewReshapeOp(t, result))
	return result
}

// Transpose transposes a tensor and records the operation. Linear
// transposes its weight parameter every forward pass; without the
// recorded op the weight would never receive a gradient.
func (b *Backend[B]) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Transpose(t)
	b.tape.Record(ops.NewTransposeOp(t, result))
	return result
}

// AddScalar adds a constant element-wise and records the operation.
func (b *Backend[B]) AddScalar(t *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	result := b.inner.AddScalar(t, scalar)
	b.tape.Record(ops.NewAddScalarOp(t, result))
	return result
}

// MulScalar multiplies by a constant element-wise and records the operation.
func (b *Backend[B]) MulScalar(t *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	result := b.inner.MulScalar(t, scalar)
	b.tape.Record(ops.NewMulScalarOp(t, result, scalar))
	return result
}

// LeakyReLU applies the leaky rectifier f(x) = max(x, slope*x) and records
// the operation.
func (b *Backend[B]) LeakyReLU(x *tensor.RawTensor, slope float32) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape())
	xData, resData := x.Data(), result.Data()
	for i, v := range xData {
		if v > 0 {
			resData[i] = v
		} else {
			resData[i] = slope * v
		}
	}
	b.tape.Record(ops.NewLeakyReLUOp(x, result, slope))
	return result
}

// Sigmoid applies the logistic function σ(x) = 1 / (1 + exp(-x)) and
// records the operation.
func (b *Backend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape())
	xData, resData := x.Data(), result.Data()
	for i, v := range xData {
		resData[i] = float32(1.0 / (1.0 + math.Exp(float64(-v))))
	}
	b.tape.Record(ops.NewSigmoidOp(x, result))
	return result
}

// LogEps computes log(x + epsilon) element-wise and records the operation.
// A non-positive epsilon falls back to DefaultLogEps. Inputs are expected
// in [0, 1); the floor keeps the result finite at exactly zero.
func (b *Backend[B]) LogEps(x *tensor.RawTensor, epsilon float32) *tensor.RawTensor {
	if epsilon <= 0 {
		epsilon = DefaultLogEps
	}
	result := tensor.MustNewRaw(x.Shape())
	xData, resData := x.Data(), result.Data()
	for i, v := range xData {
		resData[i] = float32(math.Log(float64(v + epsilon)))
	}
	b.tape.Record(ops.NewLogEpsOp(x, result, epsilon))
	return result
}

// Mean reduces a tensor to its arithmetic mean as a single-element tensor
// and records the operation.
func (b *Backend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustNewRaw(tensor.Shape{1})
	var sum float64
	for _, v := range x.Data() {
		sum += float64(v)
	}
	result.Data()[0] = float32(sum / float64(x.NumElements()))
	b.tape.Record(ops.NewMeanOp(x, result))
	return result
}
