package sgemm

// NaiveKernel is the textbook triple loop. It is the correctness oracle
// the optimized kernels are verified against, not a throughput kernel.
type NaiveKernel struct{}

// NewNaiveKernel returns the reference kernel.
func NewNaiveKernel() *NaiveKernel { return &NaiveKernel{} }

// Name identifies the kernel.
func (*NaiveKernel) Name() string { return "naive" }

// Multiply allocates and returns a*b.
func (nk *NaiveKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(nk, a, b)
}

// MultiplyInto writes a*b into dst.
func (nk *NaiveKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	naiveMatMul(a.data, b.data, dst.data, m, k, n)
	return nil
}

// naiveMatMul computes c = a*b on row-major storage. Loop order is i-p-j
// so the inner loop walks rows of b and c contiguously; a is m x k, b is
// k x n, c is m x n.
func naiveMatMul(a, b, c []float32, m, k, n int) {
	for i := range c {
		c[i] = 0
	}
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			aVal := a[i*k+p]
			for j := 0; j < n; j++ {
				c[i*n+j] += aVal * b[p*n+j]
			}
		}
	}
}
