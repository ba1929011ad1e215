package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/advnet-ml/advnet/internal/tensor"
)

// MatMul performs 2D matrix multiplication using gonum's float32 GEMM:
// [M, K] @ [K, N] -> [M, N].
func (c *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v and %v", aShape, bShape))
	}
	m, k := aShape[0], aShape[1]
	if bShape[0] != k {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", aShape, bShape))
	}
	n := bShape[1]

	out := tensor.MustNewRaw(tensor.Shape{m, n})

	aMat := blas32.General{Rows: m, Cols: k, Stride: k, Data: a.Data()}
	bMat := blas32.General{Rows: k, Cols: n, Stride: n, Data: b.Data()}
	outMat := blas32.General{Rows: m, Cols: n, Stride: n, Data: out.Data()}

	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, aMat, bMat, 0, outMat)
	return out
}
