// Package optim implements the momentum-based gradient optimizer and its
// step-indexed learning-rate and momentum schedules.
//
// Each optimizer owns the parameters of exactly one network and carries
// its own step counter; the counter drives the schedules and advances by
// one per Step. Two networks trained in alternation therefore decay and
// ramp independently.
package optim

import "github.com/advnet-ml/advnet/internal/tensor"

// Optimizer is the interface for parameter-update algorithms.
type Optimizer interface {
	// Step applies one update to all owned parameters using the gradient
	// map produced by the tape, then advances the step counter by one.
	// Parameters without a gradient in the map are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// StepCount returns how many updates have been applied.
	StepCount() int64

	// LearningRate returns the learning rate the next Step will use.
	LearningRate() float32

	// Momentum returns the momentum coefficient the next Step will use.
	Momentum() float32
}
