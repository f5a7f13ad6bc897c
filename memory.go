package sgemm

import (
	"unsafe"
)

// alignedSlice returns a float32 slice of length n whose first element sits
// on a SIMDAlignment boundary. The runtime already aligns large slice
// backing arrays this way; over-allocating and re-slicing makes it
// unconditional so vector loads in the kernels never straddle a cache line
// at element 0.
func alignedSlice(n int) []float32 {
	if n == 0 {
		return nil
	}
	pad := SIMDAlignment / 4
	buf := make([]float32, n+pad)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := 0
	if rem := addr % SIMDAlignment; rem != 0 {
		off = int(SIMDAlignment-rem) / 4
	}
	return buf[off : off+n : off+n]
}
