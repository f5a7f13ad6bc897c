package sgemm

// BlockedKernel tiles the product so a block of b is reused across a full
// block of rows of a before it leaves L1. One level of blocking is enough
// at the sizes this library targets; the vector kernel adds register
// blocking on top of the same scheme.
type BlockedKernel struct {
	tile int
}

// NewBlockedKernel returns a blocked kernel with the default tile size.
func NewBlockedKernel() *BlockedKernel {
	return &BlockedKernel{tile: MatrixTileSize}
}

// NewBlockedKernelTile returns a blocked kernel with an explicit tile
// edge, for tuning experiments.
func NewBlockedKernelTile(tile int) *BlockedKernel {
	if tile < 1 {
		tile = MatrixTileSize
	}
	return &BlockedKernel{tile: tile}
}

// Name identifies the kernel.
func (*BlockedKernel) Name() string { return "blocked" }

// Multiply allocates and returns a*b.
func (bk *BlockedKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(bk, a, b)
}

// MultiplyInto writes a*b into dst.
func (bk *BlockedKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	blockedMatMul(a.data, b.data, dst.data, m, k, n, bk.tile)
	return nil
}

// blockedMatMul computes c = a*b in tile x tile blocks. Within a block
// the i-p-j order keeps the inner loop walking b and c rows
// contiguously; the row subslices let the compiler drop bounds checks in
// the hot loop.
func blockedMatMul(a, b, c []float32, m, k, n, tile int) {
	for i := range c {
		c[i] = 0
	}
	for ii := 0; ii < m; ii += tile {
		iEnd := min(ii+tile, m)
		for pp := 0; pp < k; pp += tile {
			pEnd := min(pp+tile, k)
			for jj := 0; jj < n; jj += tile {
				jEnd := min(jj+tile, n)
				for i := ii; i < iEnd; i++ {
					cRow := c[i*n : (i+1)*n]
					for p := pp; p < pEnd; p++ {
						aVal := a[i*k+p]
						bRow := b[p*n : (p+1)*n]
						for j := jj; j < jEnd; j++ {
							cRow[j] += aVal * bRow[j]
						}
					}
				}
			}
		}
	}
}
