package sgemm

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks the instruction set extensions the kernels care
// about. The x/sys/cpu feature structs exist on every architecture and
// stay false off their own platform, so no build tags are needed here.
type CPUFeatures struct {
	HasAVX2    bool
	HasFMA     bool
	HasAVX512F bool
	HasNEON    bool
}

// Global CPU feature detection
var cpuFeatures CPUFeatures

func init() {
	detectCPUFeatures()
}

// detectCPUFeatures populates the global cpuFeatures struct
func detectCPUFeatures() {
	cpuFeatures = CPUFeatures{
		HasAVX2:    cpu.X86.HasAVX2,
		HasFMA:     cpu.X86.HasFMA,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasNEON:    cpu.ARM64.HasASIMD,
	}
}

// Features returns the CPU features detected at startup.
func Features() CPUFeatures {
	return cpuFeatures
}

// HasVectorUnit reports whether a SIMD unit worth dispatching the vector
// kernel to was detected.
func (f CPUFeatures) HasVectorUnit() bool {
	return f.HasAVX512F || (f.HasAVX2 && f.HasFMA) || f.HasNEON
}

// String lists the detected extensions for logs and session files.
func (f CPUFeatures) String() string {
	var features []string
	if f.HasAVX2 {
		features = append(features, "AVX2")
	}
	if f.HasFMA {
		features = append(features, "FMA")
	}
	if f.HasAVX512F {
		features = append(features, "AVX512F")
	}
	if f.HasNEON {
		features = append(features, "NEON")
	}
	if len(features) == 0 {
		return "no SIMD extensions detected"
	}
	return strings.Join(features, ",")
}
