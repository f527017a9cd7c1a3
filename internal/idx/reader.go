package idx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Images is an IDX image file viewed as an N x (R*C) row-major matrix.
type Images struct {
	Header ImageHeader
	Pixels []byte // N*R*C bytes, valid until Close

	src *source
}

// Count returns the number of samples (N).
func (im *Images) Count() int {
	return int(im.Header.Count)
}

// RowSize returns the number of pixels per sample (R*C).
func (im *Images) RowSize() int {
	return int(im.Header.RowSize()) //nolint:gosec // G115: checked against math.MaxInt in parseImages
}

// Row returns the pixels of sample i without copying.
func (im *Images) Row(i int) []byte {
	size := im.RowSize()
	return im.Pixels[i*size : (i+1)*size]
}

// Close releases the underlying file data.
// Pixels must not be used afterwards when the file was memory-mapped.
func (im *Images) Close() error {
	if im.src == nil {
		return nil
	}
	return im.src.Close()
}

// Labels is an IDX label file viewed as a vector of bytes.
type Labels struct {
	Header LabelHeader
	Values []byte // valid until Close

	src *source
}

// Count returns the number of labels actually present.
func (l *Labels) Count() int {
	return len(l.Values)
}

// Close releases the underlying file data.
func (l *Labels) Close() error {
	if l.src == nil {
		return nil
	}
	return l.src.Close()
}

// ReadImages reads an IDX image file.
//
// The first 16 bytes are decoded as big-endian (magic, N, R, C). The rest of
// the file must be exactly N*R*C bytes.
func ReadImages(path string, opts Options) (*Images, error) {
	src, err := openSource(path, opts.Mmap)
	if err != nil {
		return nil, err
	}

	images, err := parseImages(path, src.data, opts.ValidationLevel)
	if err != nil {
		_ = src.Close() // Best effort close on error
		return nil, err
	}
	images.src = src

	return images, nil
}

// ReadLabels reads an IDX label file.
//
// The first 8 bytes are decoded as big-endian (magic, N'). The rest of the
// file is the label vector; its length must equal N' unless validation is
// ValidationNone.
func ReadLabels(path string, opts Options) (*Labels, error) {
	src, err := openSource(path, opts.Mmap)
	if err != nil {
		return nil, err
	}

	labels, err := parseLabels(path, src.data, opts.ValidationLevel)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	labels.src = src

	return labels, nil
}

// ParseImageHeader decodes the fixed image header from the start of data.
func ParseImageHeader(data []byte) (ImageHeader, error) {
	if len(data) < ImageHeaderSize {
		return ImageHeader{}, fmt.Errorf("%w: got %d bytes, need %d", ErrShortHeader, len(data), ImageHeaderSize)
	}
	return ImageHeader{
		Magic: binary.BigEndian.Uint32(data[0:4]),
		Count: binary.BigEndian.Uint32(data[4:8]),
		Rows:  binary.BigEndian.Uint32(data[8:12]),
		Cols:  binary.BigEndian.Uint32(data[12:16]),
	}, nil
}

// ParseLabelHeader decodes the fixed label header from the start of data.
func ParseLabelHeader(data []byte) (LabelHeader, error) {
	if len(data) < LabelHeaderSize {
		return LabelHeader{}, fmt.Errorf("%w: got %d bytes, need %d", ErrShortHeader, len(data), LabelHeaderSize)
	}
	return LabelHeader{
		Magic: binary.BigEndian.Uint32(data[0:4]),
		Count: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}

func parseImages(path string, data []byte, level ValidationLevel) (*Images, error) {
	if len(data) < ImageHeaderSize {
		return nil, formatError(path, ErrShortHeader, "got %d bytes, need %d", len(data), ImageHeaderSize)
	}
	header, _ := ParseImageHeader(data)

	if level == ValidationStrict && header.Magic != MagicImages {
		return nil, formatError(path, ErrInvalidMagic, "got %d, want %d", header.Magic, MagicImages)
	}

	pixels := data[ImageHeaderSize:]
	count, ok := header.PixelCount()
	if !ok || count != uint64(len(pixels)) {
		return nil, formatError(path, ErrShapeMismatch,
			"%d bytes cannot be reshaped to %d x (%d*%d)",
			len(pixels), header.Count, header.Rows, header.Cols)
	}
	// Count and RowSize are used as int indexes; an empty dataset can still
	// declare a row too wide to index.
	if uint64(header.Count) > math.MaxInt || header.RowSize() >= math.MaxInt {
		return nil, formatError(path, ErrShapeMismatch,
			"%d x (%d*%d) exceeds the addressable size", header.Count, header.Rows, header.Cols)
	}

	return &Images{Header: header, Pixels: pixels}, nil
}

func parseLabels(path string, data []byte, level ValidationLevel) (*Labels, error) {
	if len(data) < LabelHeaderSize {
		return nil, formatError(path, ErrShortHeader, "got %d bytes, need %d", len(data), LabelHeaderSize)
	}
	header, _ := ParseLabelHeader(data)

	if level == ValidationStrict && header.Magic != MagicLabels {
		return nil, formatError(path, ErrInvalidMagic, "got %d, want %d", header.Magic, MagicLabels)
	}

	values := data[LabelHeaderSize:]
	if level != ValidationNone && uint64(len(values)) != uint64(header.Count) {
		return nil, formatError(path, ErrLabelCount,
			"header declares %d labels, file holds %d", header.Count, len(values))
	}

	return &Labels{Header: header, Values: values}, nil
}
