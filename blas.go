package sgemm

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// BLASKernel delegates to gonum's float32 BLAS. By default that is the
// pure-Go gonum implementation; building with -tags netlib swaps in the
// system CBLAS behind the same kernel (see netlib.go).
type BLASKernel struct{}

// NewBLASKernel returns the gonum-backed kernel.
func NewBLASKernel() *BLASKernel { return &BLASKernel{} }

// Name identifies the kernel.
func (*BLASKernel) Name() string { return "blas" }

// Multiply allocates and returns a*b.
func (lk *BLASKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(lk, a, b)
}

// MultiplyInto writes a*b into dst.
func (lk *BLASKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	// Degenerate shapes would reach Sgemm with a zero stride, which the
	// parameter checks reject. Nothing to compute anyway.
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		for i := range dst.data {
			dst.data[i] = 0
		}
		return nil
	}
	ga := blas32.General{Rows: m, Cols: k, Data: a.data, Stride: k}
	gb := blas32.General{Rows: k, Cols: n, Data: b.data, Stride: n}
	gc := blas32.General{Rows: m, Cols: n, Data: dst.data, Stride: n}
	// beta=0 overwrites C without reading it.
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
	return nil
}
