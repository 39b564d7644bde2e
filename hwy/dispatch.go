package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel represents the vector instruction set whose register width
// sizes the default word.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD detection; words default to 16 bytes.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 (128-bit registers, x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 (256-bit registers).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 (512-bit registers).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON (128-bit registers).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// scalarWidth is used when no vector unit is detected, so that words keep a
// consistent size across platforms.
const scalarWidth = 16

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// CurrentLevel returns the detected instruction set.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current target.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, the scalar width is used regardless of CPU capabilities.
// This is useful for getting identical stream shapes on every machine.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = scalarWidth
}

// MaxLanes returns the number of entries of type T that fill one register of
// the current width. It is the default word width N for streams of T.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//   - int16: 32/2 = 16 lanes
//
// Entry types wider than the register yield a single lane.
func MaxLanes[T any]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 || elementSize >= currentWidth {
		return 1
	}
	return currentWidth / elementSize
}
