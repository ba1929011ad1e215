package optim_test

import (
	"testing"

	"github.com/advnet-ml/advnet/internal/autodiff"
	"github.com/advnet-ml/advnet/internal/backend/cpu"
	"github.com/advnet-ml/advnet/internal/nn"
	"github.com/advnet-ml/advnet/internal/optim"
	"github.com/advnet-ml/advnet/internal/tensor"
)

type backend = *autodiff.Backend[*cpu.Backend]

// constant schedules for predictable update math.
type constLR float32

func (c constLR) LearningRate(int64) float32 { return float32(c) }

type constMomentum float32

func (c constMomentum) Momentum(int64) float32 { return float32(c) }

func newParam(t *testing.T, b backend, name string, values ...float32) *nn.Parameter[backend] {
	t.Helper()
	tns, err := tensor.FromSlice(values, tensor.Shape{len(values)}, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return nn.NewParameter(name, tns)
}

func gradFor(p *nn.Parameter[backend], values ...float32) map[*tensor.RawTensor]*tensor.RawTensor {
	grad := tensor.MustNewRaw(tensor.Shape{len(values)})
	copy(grad.Data(), values)
	return map[*tensor.RawTensor]*tensor.RawTensor{p.Tensor().Raw(): grad}
}

// TestSGDNoMomentum checks the plain update x -= lr * grad.
func TestSGDNoMomentum(t *testing.T) {
	b := autodiff.New(cpu.New())
	param := newParam(t, b, "x", 2.0)

	opt := optim.NewSGD([]*nn.Parameter[backend]{param},
		optim.SGDConfig{LR: constLR(0.1), Momentum: constMomentum(0)})

	opt.Step(gradFor(param, 1.0))

	// v = 0*0 - 0.1*1 = -0.1; x = 2.0 - 0.1 = 1.9
	got := param.Tensor().Data()[0]
	if !floatEqual(got, 1.9, 1e-6) {
		t.Errorf("param after step = %f, want 1.9", got)
	}
	if opt.StepCount() != 1 {
		t.Errorf("StepCount() = %d, want 1", opt.StepCount())
	}
}

// TestSGDMomentumAccumulates checks the velocity recursion
// v = mu*v - lr*grad over two steps with a constant gradient.
func TestSGDMomentumAccumulates(t *testing.T) {
	b := autodiff.New(cpu.New())
	param := newParam(t, b, "x", 0.0)

	opt := optim.NewSGD([]*nn.Parameter[backend]{param},
		optim.SGDConfig{LR: constLR(0.1), Momentum: constMomentum(0.9)})

	// step 0: v = -0.1, x = -0.1
	opt.Step(gradFor(param, 1.0))
	// step 1: v = 0.9*(-0.1) - 0.1 = -0.19, x = -0.29
	opt.Step(gradFor(param, 1.0))

	got := param.Tensor().Data()[0]
	if !floatEqual(got, -0.29, 1e-6) {
		t.Errorf("param after two steps = %f, want -0.29", got)
	}
}

// TestSGDFollowsSchedules checks that the optimizer reads lr and momentum
// from the schedules at its own step counter.
func TestSGDFollowsSchedules(t *testing.T) {
	b := autodiff.New(cpu.New())
	param := newParam(t, b, "x", 0.0)

	opt := optim.NewSGD([]*nn.Parameter[backend]{param},
		optim.SGDConfig{
			LR:       optim.ExpDecay{Initial: 0.01, Decay: 1.000004, Floor: 1e-6},
			Momentum: optim.LinearRamp{Initial: 0.5, Final: 0.7, Saturation: 250},
		})

	if got := opt.LearningRate(); !floatEqual(got, 0.01, 1e-9) {
		t.Errorf("LearningRate() at step 0 = %g, want 0.01", got)
	}
	if got := opt.Momentum(); !floatEqual(got, 0.5, 1e-6) {
		t.Errorf("Momentum() at step 0 = %g, want 0.5", got)
	}

	opt.Step(gradFor(param, 1.0))

	if got := opt.Momentum(); !floatEqual(got, 0.5008, 1e-5) {
		t.Errorf("Momentum() at step 1 = %g, want 0.5008", got)
	}
}

// TestSGDIgnoresForeignGradients checks that gradients for tensors the
// optimizer does not own leave its parameters untouched, and that owned
// parameters without gradients are skipped.
func TestSGDIgnoresForeignGradients(t *testing.T) {
	b := autodiff.New(cpu.New())
	owned := newParam(t, b, "owned", 1.0)
	foreign := newParam(t, b, "foreign", 1.0)

	opt := optim.NewSGD([]*nn.Parameter[backend]{owned},
		optim.SGDConfig{LR: constLR(0.1), Momentum: constMomentum(0)})

	// Gradient map mentions only the foreign tensor.
	opt.Step(gradFor(foreign, 5.0))

	if got := owned.Tensor().Data()[0]; !floatEqual(got, 1.0, 1e-9) {
		t.Errorf("owned param changed without a gradient: %f", got)
	}
	if got := foreign.Tensor().Data()[0]; !floatEqual(got, 1.0, 1e-9) {
		t.Errorf("foreign param updated by an optimizer that does not own it: %f", got)
	}
}
