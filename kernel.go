package sgemm

// Kernel computes the dense single-precision matrix product C = A*B.
// Implementations differ only in throughput. Every kernel honors the same
// contract: a.Cols() must equal b.Rows(), the result has shape
// (a.Rows(), b.Cols()), element (i,j) is the float32 sum over k of
// a[i,k]*b[k,j] with accumulation order unspecified, and the inputs are
// never mutated. Reordered accumulation changes rounding, so comparisons
// across kernels use a relative tolerance.
type Kernel interface {
	// Name identifies the kernel in logs and benchmark output.
	Name() string

	// Multiply allocates and returns the product a*b. Fails with
	// ErrDimensionMismatch when a.Cols() != b.Rows().
	Multiply(a, b *Matrix) (*Matrix, error)

	// MultiplyInto writes the product a*b into dst, overwriting its
	// previous contents completely. dst must have shape
	// (a.Rows(), b.Cols()), otherwise ErrDimensionMismatch.
	MultiplyInto(dst, a, b *Matrix) error
}

// checkMultiply validates operand shapes and returns the problem
// dimensions: C is m x n, the shared inner dimension is k.
func checkMultiply(op string, a, b *Matrix) (m, n, k int, err error) {
	if a.cols != b.rows {
		return 0, 0, 0, NewDimensionMismatchError(op, a.rows, a.cols, b.rows, b.cols)
	}
	return a.rows, b.cols, a.cols, nil
}

// checkDst validates that dst has shape (m, n).
func checkDst(op string, dst *Matrix, m, n int) error {
	if dst.rows != m || dst.cols != n {
		return NewShapeError(op, m, n, dst.rows, dst.cols)
	}
	return nil
}

// multiplyAlloc implements the allocating Multiply form shared by all
// kernels: validate, allocate the output, delegate to MultiplyInto.
func multiplyAlloc(k Kernel, a, b *Matrix) (*Matrix, error) {
	m, n, _, err := checkMultiply("Multiply", a, b)
	if err != nil {
		return nil, err
	}
	dst := &Matrix{rows: m, cols: n, data: alignedSlice(m * n)}
	if err := k.MultiplyInto(dst, a, b); err != nil {
		return nil, err
	}
	return dst, nil
}

// FlopCount returns the floating-point operation count of one multiply,
// 2*M*K*N: one multiply and one add per inner-product step.
func FlopCount(a, b *Matrix) float64 {
	return 2 * float64(a.rows) * float64(a.cols) * float64(b.cols)
}

// Multiply computes a*b with the best kernel for the problem size on
// this machine.
func Multiply(a, b *Matrix) (*Matrix, error) {
	return SelectKernel(a.rows, a.cols, b.cols).Multiply(a, b)
}

// MultiplyInto computes a*b into dst with the best kernel for the
// problem size on this machine.
func MultiplyInto(dst, a, b *Matrix) error {
	return SelectKernel(a.rows, a.cols, b.cols).MultiplyInto(dst, a, b)
}
