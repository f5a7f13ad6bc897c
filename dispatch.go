package sgemm

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy"
)

// DefaultKernel returns the kernel the package-level Multiply functions
// use on this machine: the vector kernel when a SIMD unit is present,
// otherwise the blocked kernel. Parallel execution is never selected
// implicitly; callers opt in with NewParallelKernel.
func DefaultKernel() Kernel {
	if cpuFeatures.HasVectorUnit() {
		return NewVectorKernel()
	}
	return NewBlockedKernel()
}

// SelectKernel returns the best serial kernel for a problem of the given
// dimensions. Tiny problems skip the vector kernel; its tile setup costs
// more than the whole product at that size.
func SelectKernel(m, k, n int) Kernel {
	if m <= SmallProblemSize && k <= SmallProblemSize && n <= SmallProblemSize {
		return NewBlockedKernel()
	}
	return DefaultKernel()
}

// KernelByName maps a selector to a kernel. "auto" picks DefaultKernel.
func KernelByName(name string) (Kernel, error) {
	switch name {
	case "auto":
		return DefaultKernel(), nil
	case "naive":
		return NewNaiveKernel(), nil
	case "blocked":
		return NewBlockedKernel(), nil
	case "oblivious":
		return NewObliviousKernel(), nil
	case "vector":
		return NewVectorKernel(), nil
	case "parallel":
		return NewParallelKernel(0), nil
	case "blas":
		return NewBLASKernel(), nil
	case "tensor":
		return NewTensorKernel(), nil
	}
	return nil, fmt.Errorf("sgemm: unknown kernel %q (have naive, blocked, oblivious, vector, parallel, blas, tensor, auto)", name)
}

// VectorWidth returns the number of float32 lanes a vector operation
// covers on this machine.
func VectorWidth() int {
	return hwy.MaxLanes[float32]()
}
