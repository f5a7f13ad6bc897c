package sgemm

import (
	"runtime"
	"sync"
)

// ParallelKernel splits the output into horizontal strips and feeds them
// to a pool of workers, each running the vector kernel on its strip. A
// strip of C depends on the same strip of rows of A and all of B, so
// strips write disjoint output and no locking is involved. Which
// elements are computed is fixed; only the scheduling of strips varies
// between runs.
type ParallelKernel struct {
	workers int
}

// NewParallelKernel returns a parallel kernel with an explicit worker
// count. Zero means one worker per available CPU. The count is an
// explicit field rather than ambient process state so runs are
// reproducible and testable.
func NewParallelKernel(workers int) *ParallelKernel {
	if workers < 0 {
		workers = 0
	}
	return &ParallelKernel{workers: workers}
}

// Name identifies the kernel.
func (*ParallelKernel) Name() string { return "parallel" }

// Workers returns the configured worker count, zero meaning automatic.
func (pk *ParallelKernel) Workers() int { return pk.workers }

// Multiply allocates and returns a*b.
func (pk *ParallelKernel) Multiply(a, b *Matrix) (*Matrix, error) {
	return multiplyAlloc(pk, a, b)
}

// MultiplyInto writes a*b into dst.
func (pk *ParallelKernel) MultiplyInto(dst, a, b *Matrix) error {
	m, n, k, err := checkMultiply("MultiplyInto", a, b)
	if err != nil {
		return err
	}
	if err := checkDst("MultiplyInto", dst, m, n); err != nil {
		return err
	}
	parallelMatMul(a.data, b.data, dst.data, m, k, n, pk.workers)
	return nil
}

// parallelMatMul computes c = a*b over a work queue of row strips.
// Problems below MinParallelOps run serially; goroutine startup costs
// more than it saves there.
func parallelMatMul(a, b, c []float32, m, k, n, workers int) {
	if m*n*k < MinParallelOps {
		vectorMatMul(a, b, c, m, k, n)
		return
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	numStrips := (m + RowsPerStrip - 1) / RowsPerStrip
	if workers > numStrips {
		workers = numStrips
	}

	work := make(chan int, numStrips)
	for strip := 0; strip < numStrips; strip++ {
		work <- strip
	}
	close(work)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for strip := range work {
				rowStart := strip * RowsPerStrip
				rowEnd := min(rowStart+RowsPerStrip, m)
				aStrip := a[rowStart*k : rowEnd*k]
				cStrip := c[rowStart*n : rowEnd*n]
				vectorMatMul(aStrip, b, cStrip, rowEnd-rowStart, k, n)
			}
		}()
	}
	wg.Wait()
}
