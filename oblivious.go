package sgemm

// ObliviousKernel multiplies by recursive subdivision: split the largest
// of (m, k, n) in half until the subproblem fits the base tile, then run
// a straight loop on it. No cache sizes are consulted; the recursion
// adapts to every level of the hierarchy at once.
type ObliviousKernel struct {
	baseSize int
}

// NewObliviousKernel returns a cache-oblivious kernel with the default
// base-case size.
func NewObliviousKernel() *ObliviousKernel {
	return &ObliviousKernel{baseSize: ObliviousBaseSize}
}

// Name identifies the kernel.
func (*ObliviousKernel) Name() string { return "oblivious" }

// Multiply allocates and returns a*b.
func (ob *ObliviousKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(ob, a, b)
}

// MultiplyInto writes a*b into dst.
func (ob *ObliviousKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	c := dst.data
	for i := range c {
		c[i] = 0
	}
	ob.recurse(a.data, b.data, c, k, n, 0, 0, 0, m, k, n)
	return nil
}

// recurse accumulates the subproblem
// c[i0:i0+mm, j0:j0+nn] += a[i0:i0+mm, p0:p0+kk] * b[p0:p0+kk, j0:j0+nn]
// where a has stride lda and b, c share stride ldn.
func (ob *ObliviousKernel) recurse(a, b, c []float32, lda, ldn, i0, p0, j0, mm, kk, nn int) {
	if mm <= ob.baseSize && kk <= ob.baseSize && nn <= ob.baseSize {
		obliviousBase(a, b, c, lda, ldn, i0, p0, j0, mm, kk, nn)
		return
	}
	switch {
	case mm >= kk && mm >= nn:
		mid := mm / 2
		ob.recurse(a, b, c, lda, ldn, i0, p0, j0, mid, kk, nn)
		ob.recurse(a, b, c, lda, ldn, i0+mid, p0, j0, mm-mid, kk, nn)
	case nn >= mm && nn >= kk:
		mid := nn / 2
		ob.recurse(a, b, c, lda, ldn, i0, p0, j0, mm, kk, mid)
		ob.recurse(a, b, c, lda, ldn, i0, p0, j0+mid, mm, kk, nn-mid)
	default:
		// Both k halves write the same C region, so they must stay
		// sequential.
		mid := kk / 2
		ob.recurse(a, b, c, lda, ldn, i0, p0, j0, mm, mid, nn)
		ob.recurse(a, b, c, lda, ldn, i0, p0+mid, j0, mm, kk-mid, nn)
	}
}

// obliviousBase is the recursion floor, an i-p-j accumulation loop over
// the subproblem.
func obliviousBase(a, b, c []float32, lda, ldn, i0, p0, j0, mm, kk, nn int) {
	for i := i0; i < i0+mm; i++ {
		cRow := c[i*ldn : (i+1)*ldn]
		for p := p0; p < p0+kk; p++ {
			aVal := a[i*lda+p]
			bRow := b[p*ldn : (p+1)*ldn]
			for j := j0; j < j0+nn; j++ {
				cRow[j] += aVal * bRow[j]
			}
		}
	}
}
