package optim

import "math"

// Schedules are pure functions of a step counter and fixed
// hyperparameters. They hold no mutable state: the optimizer owns the
// counter and asks the schedule for the value at each step.

// LRSchedule yields a learning rate for a given step.
type LRSchedule interface {
	LearningRate(step int64) float32
}

// MomentumSchedule yields a momentum coefficient for a given step.
type MomentumSchedule interface {
	Momentum(step int64) float32
}

// ExpDecay is an exponentially decaying learning rate with a floor:
//
//	lr(step) = max(initial / decay^step, floor)
//
// Monotonically non-increasing; lr(0) == Initial; never below Floor.
type ExpDecay struct {
	Initial float32 // learning rate at step 0
	Decay   float32 // per-step divisor base, > 1 for decay
	Floor   float32 // lower bound
}

// LearningRate returns the decayed learning rate at the given step.
func (d ExpDecay) LearningRate(step int64) float32 {
	lr := float32(float64(d.Initial) / math.Pow(float64(d.Decay), float64(step)))
	if lr < d.Floor {
		return d.Floor
	}
	return lr
}

// LinearRamp is a momentum coefficient that ramps linearly from Initial to
// Final over Saturation steps, then stays at Final:
//
//	m(step) = min(initial + (final-initial) * step/saturation, final)
//
// Monotonically non-decreasing; m(0) == Initial; m(step) == Final for all
// step >= Saturation.
type LinearRamp struct {
	Initial    float32 // momentum at step 0
	Final      float32 // momentum after saturation
	Saturation int64   // step at which the ramp reaches Final
}

// Momentum returns the ramped momentum at the given step.
func (r LinearRamp) Momentum(step int64) float32 {
	if step >= r.Saturation {
		return r.Final
	}
	return r.Initial + (r.Final-r.Initial)*float32(step)/float32(r.Saturation)
}
