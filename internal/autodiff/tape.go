package autodiff

import (
	"github.com/advnet-ml/advnet/internal/autodiff/ops"
	"github.com/advnet-ml/advnet/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass by walking the recording in reverse.
//
// Usage:
//
//	tape.Clear()
//	tape.StartRecording()
//	... forward pass ...
//	grads := tape.Backward(seedGrad, backend)
type GradientTape struct {
	operations []ops.Operation // in execution order
	recording  bool
}

// NewGradientTape creates a new gradient tape. It starts out not recording.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording reports whether the tape is currently recording.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record appends an operation if the tape is recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear drops all recorded operations. The recording flag is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward computes gradients for every tensor reachable from the final
// recorded operation.
//
// The seed gradient (typically a single 1 for a scalar loss) is assigned
// to the last operation's output; the tape is then walked in reverse,
// each operation converting its output gradient into input gradients,
// which accumulate when a tensor fed several operations.
//
// Returns a map from RawTensor identity to its accumulated gradient.
func (t *GradientTape) Backward(seedGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient arithmetic itself must not be recorded.
	wasRecording := t.recording
	t.recording = false
	defer func() { t.recording = wasRecording }()

	last := t.operations[len(t.operations)-1]
	grads[last.Output()] = seedGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		outputGrad, ok := grads[op.Output()]
		if !ok {
			// No gradient flowed to this operation's output.
			continue
		}
		inputGrads := op.Backward(outputGrad, backend)
		for j, input := range op.Inputs() {
			if j >= len(inputGrads) || inputGrads[j] == nil {
				continue
			}
			if existing, ok := grads[input]; ok {
				grads[input] = backend.Add(existing, inputGrads[j])
			} else {
				grads[input] = inputGrads[j]
			}
		}
	}

	return grads
}
