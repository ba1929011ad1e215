package ops

import "github.com/advnet-ml/advnet/internal/tensor"

// reduceBroadcast reduces a gradient tensor to the shape of the input it
// belongs to. Needed when the forward pass broadcast the input: each input
// element then contributed to several output elements, and their
// gradients must be summed back.
//
// Example:
//
//	forward:  a[1, 4] + b[3, 4] -> c[3, 4]   (a broadcast along dim 0)
//	backward: grad_c[3, 4] -> grad_a[1, 4]   (summed along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, _ tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		// Clone so gradient accumulation never aliases an op output.
		return grad.Clone()
	}

	out := tensor.MustNewRaw(targetShape)
	dst := out.Data()

	// Per grad dimension, the stride into the target buffer; 0 where the
	// target dimension was broadcast (or missing), which folds those
	// coordinates together and sums their contributions.
	gradStrides := gradShape.ComputeStrides()
	targetStrides := targetShape.ComputeStrides()
	mapped := make([]int, len(gradShape))
	shift := len(gradShape) - len(targetShape)
	for d := range gradShape {
		if d < shift {
			continue
		}
		if targetShape[d-shift] == 1 && gradShape[d] > 1 {
			continue
		}
		mapped[d] = targetStrides[d-shift]
	}

	src := grad.Data()
	for i, v := range src {
		offset := 0
		rem := i
		for d := range gradShape {
			offset += (rem / gradStrides[d]) * mapped[d]
			rem %= gradStrides[d]
		}
		dst[offset] += v
	}
	return out
}

// negate returns -t.
func negate(t *tensor.RawTensor) *tensor.RawTensor {
	out := tensor.MustNewRaw(t.Shape())
	src, dst := t.Data(), out.Data()
	for i, v := range src {
		dst[i] = -v
	}
	return out
}
