package tensor

import "math/rand"

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	raw, err := NewRaw(shape)
	if err != nil {
		panic(err)
	}
	return New(raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with a specific value.
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn i.i.d. from N(0, 1).
//
// The random source is passed explicitly: there is exactly one execution
// stream, and fixed-seed reproducibility depends on every draw going
// through the caller's source.
func Randn[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	return t
}

// Uniform creates a tensor with values drawn uniformly from [low, high).
func Uniform[B Backend](shape Shape, low, high float32, rng *rand.Rand, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	span := high - low
	for i := range data {
		data[i] = low + span*rng.Float32()
	}
	return t
}
