package sgemm

import (
	"fmt"

	"gorgonia.org/tensor"
)

// TensorKernel delegates to the gorgonia tensor engine, the other
// library-backed float32 matmul in common use. It exists so the harness
// can put both library paths side by side with the hand-written kernels.
type TensorKernel struct{}

// NewTensorKernel returns the gorgonia-backed kernel.
func NewTensorKernel() *TensorKernel { return &TensorKernel{} }

// Name identifies the kernel.
func (*TensorKernel) Name() string { return "tensor" }

// Multiply allocates and returns a*b.
func (tk *TensorKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(tk, a, b)
}

// MultiplyInto writes a*b into dst.
func (tk *TensorKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	// The tensor engine rejects zero-extent shapes; these products are
	// empty or all-zero anyway.
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		for i := range dst.data {
			dst.data[i] = 0
		}
		return nil
	}
	ta := tensor.New(tensor.WithShape(m, k), tensor.WithBacking(a.data))
	tb := tensor.New(tensor.WithShape(k, n), tensor.WithBacking(b.data))
	tc := tensor.New(tensor.WithShape(m, n), tensor.WithBacking(dst.data))
	if _, err := tensor.MatMul(ta, tb, tensor.WithReuse(tc)); err != nil {
		return fmt.Errorf("sgemm: tensor engine: %w", err)
	}
	return nil
}
