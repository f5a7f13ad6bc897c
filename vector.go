package sgemm

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Block edge for the vector kernel. Three 48x48 float32 tiles are 27KB,
// inside a 32KB L1, and 48 is a multiple of every vector width hwy
// selects.
const vectorBlockSize = 48

// VectorKernel runs a portable-SIMD micro-kernel on the same cache
// blocking as BlockedKernel. Each micro-tile holds 4 rows by 2 vector
// widths of output in register accumulators across the full K dimension
// and advances with fused multiply-adds. The vector width adapts to the
// machine at runtime through hwy, so the same code runs AVX2, AVX-512,
// NEON, or scalar.
type VectorKernel struct{}

// NewVectorKernel returns the portable-SIMD kernel.
func NewVectorKernel() *VectorKernel { return &VectorKernel{} }

// Name identifies the kernel.
func (*VectorKernel) Name() string { return "vector" }

// Multiply allocates and returns a*b.
func (vk *VectorKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(vk, a, b)
}

// MultiplyInto writes a*b into dst.
func (vk *VectorKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	vectorMatMul(a.data, b.data, dst.data, m, k, n)
	return nil
}

// vectorMatMul computes c = a*b with register-blocked vector tiles.
// a is m x k, b is k x n, c is m x n, all row-major and packed.
func vectorMatMul(a, b, c []float32, m, k, n int) {
	vZero := hwy.Zero[float32]()
	lanes := vZero.NumLanes()

	// Zero the output with full vectors, then a scalar tail.
	total := m * n
	var idx int
	for idx = 0; idx+lanes <= total; idx += lanes {
		hwy.Store(vZero, c[idx:])
	}
	for ; idx < total; idx++ {
		c[idx] = 0
	}

	// Micro-tile dimensions: 4 rows by 2 vector widths.
	mr := 4
	nr := lanes * 2

	// Block over the output. Each (i0, j0) block consumes the full K
	// dimension so the accumulators never round-trip through memory.
	for i0 := 0; i0 < m; i0 += vectorBlockSize {
		iEnd := min(i0+vectorBlockSize, m)

		for j0 := 0; j0 < n; j0 += vectorBlockSize {
			jEnd := min(j0+vectorBlockSize, n)

			var i int
			for i = i0; i+mr <= iEnd; i += mr {
				var j int
				for j = j0; j+nr <= jEnd; j += nr {
					// 8 accumulators: 4 rows x 2 column strips.
					acc00 := hwy.Zero[float32]()
					acc01 := hwy.Zero[float32]()
					acc10 := hwy.Zero[float32]()
					acc11 := hwy.Zero[float32]()
					acc20 := hwy.Zero[float32]()
					acc21 := hwy.Zero[float32]()
					acc30 := hwy.Zero[float32]()
					acc31 := hwy.Zero[float32]()

					for p := 0; p < k; p++ {
						vA0 := hwy.Set(a[i*k+p])
						vA1 := hwy.Set(a[(i+1)*k+p])
						vA2 := hwy.Set(a[(i+2)*k+p])
						vA3 := hwy.Set(a[(i+3)*k+p])

						bRow := p * n
						vB0 := hwy.Load(b[bRow+j:])
						vB1 := hwy.Load(b[bRow+j+lanes:])

						acc00 = hwy.MulAdd(vA0, vB0, acc00)
						acc01 = hwy.MulAdd(vA0, vB1, acc01)
						acc10 = hwy.MulAdd(vA1, vB0, acc10)
						acc11 = hwy.MulAdd(vA1, vB1, acc11)
						acc20 = hwy.MulAdd(vA2, vB0, acc20)
						acc21 = hwy.MulAdd(vA2, vB1, acc21)
						acc30 = hwy.MulAdd(vA3, vB0, acc30)
						acc31 = hwy.MulAdd(vA3, vB1, acc31)
					}

					cRow0 := i * n
					cRow1 := (i + 1) * n
					cRow2 := (i + 2) * n
					cRow3 := (i + 3) * n

					hwy.Store(acc00, c[cRow0+j:])
					hwy.Store(acc01, c[cRow0+j+lanes:])
					hwy.Store(acc10, c[cRow1+j:])
					hwy.Store(acc11, c[cRow1+j+lanes:])
					hwy.Store(acc20, c[cRow2+j:])
					hwy.Store(acc21, c[cRow2+j+lanes:])
					hwy.Store(acc30, c[cRow3+j:])
					hwy.Store(acc31, c[cRow3+j+lanes:])
				}

				// Column remainder: single strips, then scalar.
				for ; j < jEnd; j += lanes {
					if jEnd-j >= lanes {
						acc0 := hwy.Zero[float32]()
						acc1 := hwy.Zero[float32]()
						acc2 := hwy.Zero[float32]()
						acc3 := hwy.Zero[float32]()

						for p := 0; p < k; p++ {
							vA0 := hwy.Set(a[i*k+p])
							vA1 := hwy.Set(a[(i+1)*k+p])
							vA2 := hwy.Set(a[(i+2)*k+p])
							vA3 := hwy.Set(a[(i+3)*k+p])

							vB := hwy.Load(b[p*n+j:])
							acc0 = hwy.MulAdd(vA0, vB, acc0)
							acc1 = hwy.MulAdd(vA1, vB, acc1)
							acc2 = hwy.MulAdd(vA2, vB, acc2)
							acc3 = hwy.MulAdd(vA3, vB, acc3)
						}

						hwy.Store(acc0, c[i*n+j:])
						hwy.Store(acc1, c[(i+1)*n+j:])
						hwy.Store(acc2, c[(i+2)*n+j:])
						hwy.Store(acc3, c[(i+3)*n+j:])
					} else {
						for jj := j; jj < jEnd; jj++ {
							var sum0, sum1, sum2, sum3 float32
							for p := 0; p < k; p++ {
								bpj := b[p*n+jj]
								sum0 += a[i*k+p] * bpj
								sum1 += a[(i+1)*k+p] * bpj
								sum2 += a[(i+2)*k+p] * bpj
								sum3 += a[(i+3)*k+p] * bpj
							}
							c[i*n+jj] = sum0
							c[(i+1)*n+jj] = sum1
							c[(i+2)*n+jj] = sum2
							c[(i+3)*n+jj] = sum3
						}
						break
					}
				}
			}

			// Row remainder: pairs first, then a final single row.
			for i+2 <= iEnd {
				cRow0 := i * n
				cRow1 := (i + 1) * n

				var j int
				for j = j0; j+lanes <= jEnd; j += lanes {
					acc0 := hwy.Zero[float32]()
					acc1 := hwy.Zero[float32]()

					for p := 0; p < k; p++ {
						vA0 := hwy.Set(a[i*k+p])
						vA1 := hwy.Set(a[(i+1)*k+p])
						vB := hwy.Load(b[p*n+j:])
						acc0 = hwy.MulAdd(vA0, vB, acc0)
						acc1 = hwy.MulAdd(vA1, vB, acc1)
					}

					hwy.Store(acc0, c[cRow0+j:])
					hwy.Store(acc1, c[cRow1+j:])
				}

				for ; j < jEnd; j++ {
					var sum0, sum1 float32
					for p := 0; p < k; p++ {
						bpj := b[p*n+j]
						sum0 += a[i*k+p] * bpj
						sum1 += a[(i+1)*k+p] * bpj
					}
					c[cRow0+j] = sum0
					c[cRow1+j] = sum1
				}

				i += 2
			}

			for ; i < iEnd; i++ {
				cRow := i * n

				var j int
				for j = j0; j+lanes <= jEnd; j += lanes {
					acc := hwy.Zero[float32]()
					for p := 0; p < k; p++ {
						vA := hwy.Set(a[i*k+p])
						vB := hwy.Load(b[p*n+j:])
						acc = hwy.MulAdd(vA, vB, acc)
					}
					hwy.Store(acc, c[cRow+j:])
				}

				for ; j < jEnd; j++ {
					var sum float32
					for p := 0; p < k; p++ {
						sum += a[i*k+p] * b[p*n+j]
					}
					c[cRow+j] = sum
				}
			}
		}
	}
}
