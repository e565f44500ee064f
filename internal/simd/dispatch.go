// Package simd detects the CPU feature level available at process start so
// the tlsh package can pick between its scalar reference kernels and its
// accelerated (branchless aggregation, table-driven distance) kernels for
// body aggregation and body distance. Detection
// happens once, at init time, the same way klauspost/cpuid-based dispatch
// works in other wide SIMD hashing packages: a package-level var is
// populated from cpuid.CPU and never rechecked per call.
package simd

import "github.com/klauspost/cpuid/v2"

// Level ranks the CPU feature level detected for this process. The tlsh
// package uses its scalar kernels below LevelSSE2 and its accelerated
// kernels at LevelSSE2 and above; LevelAVX2 selects the same kernels as
// LevelSSE2.
type Level int

const (
	// LevelScalar means neither SSE2 nor AVX2 was detected.
	LevelScalar Level = iota
	// LevelSSE2 means SSE2 (but not AVX2) was detected.
	LevelSSE2
	// LevelAVX2 means AVX2 was detected.
	LevelAVX2
)

func (l Level) String() string {
	switch l {
	case LevelAVX2:
		return "avx2"
	case LevelSSE2:
		return "sse2"
	default:
		return "scalar"
	}
}

var detected = detect()

func detect() Level {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX2):
		return LevelAVX2
	case cpuid.CPU.Supports(cpuid.SSE2):
		return LevelSSE2
	default:
		return LevelScalar
	}
}

// Detected returns the CPU feature level chosen at package init. It only
// reads the cached value; detection is not repeated per call.
func Detected() Level { return detected }
