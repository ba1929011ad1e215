package optim_test

import (
	"math"
	"testing"

	"github.com/advnet-ml/advnet/internal/optim"
)

func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

func TestExpDecayInitialValue(t *testing.T) {
	s := optim.ExpDecay{Initial: 0.01, Decay: 1.000004, Floor: 1e-6}
	if got := s.LearningRate(0); !floatEqual(got, 0.01, 1e-9) {
		t.Errorf("LearningRate(0) = %g, want 0.01", got)
	}
}

func TestExpDecayMonotoneDecrease(t *testing.T) {
	s := optim.ExpDecay{Initial: 0.01, Decay: 1.000004, Floor: 1e-6}
	prev := s.LearningRate(0)
	for _, step := range []int64{1, 100, 10000, 30000} {
		lr := s.LearningRate(step)
		if lr > prev {
			t.Errorf("LearningRate(%d) = %g > previous %g", step, lr, prev)
		}
		prev = lr
	}
}

func TestExpDecayMatchesClosedForm(t *testing.T) {
	s := optim.ExpDecay{Initial: 0.01, Decay: 1.000004, Floor: 1e-6}
	for _, step := range []int64{1, 250, 29999} {
		want := float32(0.01 / math.Pow(1.000004, float64(step)))
		if got := s.LearningRate(step); !floatEqual(got, want, 1e-9) {
			t.Errorf("LearningRate(%d) = %g, want %g", step, got, want)
		}
	}
}

func TestExpDecayFloor(t *testing.T) {
	s := optim.ExpDecay{Initial: 0.01, Decay: 1.000004, Floor: 1e-6}
	// 0.01 / 1.000004^step falls below 1e-6 around step 2.3M.
	if got := s.LearningRate(10_000_000); got != 1e-6 {
		t.Errorf("LearningRate(1e7) = %g, want floor 1e-6", got)
	}
}

func TestLinearRampValues(t *testing.T) {
	s := optim.LinearRamp{Initial: 0.5, Final: 0.7, Saturation: 250}

	tests := []struct {
		step int64
		want float32
	}{
		{0, 0.5},
		{125, 0.6},
		{250, 0.7},
		{251, 0.7},
		{30000, 0.7},
	}
	for _, tt := range tests {
		if got := s.Momentum(tt.step); !floatEqual(got, tt.want, 1e-6) {
			t.Errorf("Momentum(%d) = %g, want %g", tt.step, got, tt.want)
		}
	}
}
