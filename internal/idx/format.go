package idx

import "math/bits"

// Format constants.
const (
	MagicImages     = 2051 // 0x00000803: unsigned byte, 3 dimensions
	MagicLabels     = 2049 // 0x00000801: unsigned byte, 1 dimension
	ImageHeaderSize = 16   // magic, count, rows, cols
	LabelHeaderSize = 8    // magic, count
)

// ImageHeader is the fixed header of an IDX image file.
type ImageHeader struct {
	Magic uint32
	Count uint32 // N
	Rows  uint32 // R
	Cols  uint32 // C
}

// RowSize returns the number of pixels per sample (R*C).
func (h ImageHeader) RowSize() uint64 {
	return uint64(h.Rows) * uint64(h.Cols)
}

// PixelCount returns the number of pixel bytes the header declares (N*R*C).
// N*R*C can need up to 96 bits; ok is false when it does not fit in 64.
func (h ImageHeader) PixelCount() (count uint64, ok bool) {
	hi, lo := bits.Mul64(uint64(h.Count), h.RowSize())
	return lo, hi == 0
}

// LabelHeader is the fixed header of an IDX label file.
type LabelHeader struct {
	Magic uint32
	Count uint32 // N'
}

// ValidationLevel controls the strictness of header validation.
type ValidationLevel int

const (
	// ValidationNormal checks shapes and the label count (default).
	ValidationNormal ValidationLevel = iota
	// ValidationStrict additionally checks the magic numbers.
	ValidationStrict
	// ValidationNone skips the label count check.
	// The image shape is always checked since rows cannot be sliced without it.
	ValidationNone
)

// String returns the level name.
func (v ValidationLevel) String() string {
	switch v {
	case ValidationNormal:
		return "normal"
	case ValidationStrict:
		return "strict"
	case ValidationNone:
		return "none"
	default:
		return "unknown"
	}
}

// Options configures the readers.
type Options struct {
	Mmap            bool            // Memory-map the file instead of reading it into the heap
	ValidationLevel ValidationLevel // Validation strictness level
}
