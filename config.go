// Package sgemm tuning constants
package sgemm

// Cache sizes for different levels (in bytes)
const (
	// L1 cache size per core (typical for modern CPUs)
	L1CacheSize = 32 * 1024

	// L2 cache size per core (typical for modern CPUs)
	L2CacheSize = 256 * 1024

	// L3 cache size (shared, typical for modern CPUs)
	L3CacheSize = 8 * 1024 * 1024
)

// Memory layout parameters
const (
	// Alignment of matrix backing storage in bytes, one cache line
	SIMDAlignment = 64
)

// Kernel tuning parameters
const (
	// Tile edge for the blocked kernel, sized so an input tile pair and an
	// output tile of float32 fit in L1
	MatrixTileSize = 64

	// Edge below which the cache-oblivious kernel stops subdividing
	ObliviousBaseSize = 64

	// Tile edge for the blocked transpose
	TransposeTileSize = 8

	// Rows handed to one worker at a time in the parallel kernel
	RowsPerStrip = 64

	// Problems with fewer than this many multiply-adds stay serial
	MinParallelOps = 64 * 64 * 64

	// Problems with edges at or below this use the blocked kernel even
	// when a vector unit is available
	SmallProblemSize = 32
)

// Numerical constants
const (
	// Machine epsilon for float32
	Float32Epsilon = 1.192092896e-07

	// Maximum ULP difference for float32 comparisons
	MaxULPDiff = 4
)
