package tensor

// Backend defines the interface compute backends must implement.
//
// Backends execute eagerly. Operations receiving tensors of incompatible
// shapes fail fast with a descriptive panic; shape validation at the data
// boundary is the caller's job.
//
// Implementations:
//   - cpu.Backend: pure Go kernels, GEMM via gonum blas32
//   - autodiff.Backend: decorator recording operations on a gradient tape
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul performs 2D matrix multiplication: [M,K] @ [K,N] -> [M,N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor) *RawTensor // 2D only

	// Scalar operations.
	AddScalar(t *RawTensor, scalar float32) *RawTensor
	MulScalar(t *RawTensor, scalar float32) *RawTensor

	// Metadata.
	Name() string
}
