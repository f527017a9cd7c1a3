// Package convert provides IDX to CSV dataset conversion.
//
// This package wraps the internal implementation and exports a clean public
// API for converting MNIST-style IDX files into labeled CSV rows.
//
// Example usage:
//
//	import "github.com/born-ml/idxcsv/convert"
//
//	result, err := convert.Run(convert.Options{
//	    ImagesPath: "datasets/fashion/train-images-idx3-ubyte",
//	    LabelsPath: "datasets/fashion/train-labels-idx1-ubyte",
//	    OutputPath: "datasets/fashion/fashion_mnist_train.csv",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Saved %d samples to %s\n", result.Samples, result.OutputPath)
package convert

import (
	"github.com/born-ml/idxcsv/internal/convert"
	"github.com/born-ml/idxcsv/internal/idx"
)

// Default paths of the Fashion-MNIST training set.
const (
	DefaultImagesPath = "datasets/fashion/train-images-idx3-ubyte"
	DefaultLabelsPath = "datasets/fashion/train-labels-idx1-ubyte"
	DefaultOutputPath = "datasets/fashion/fashion_mnist_train.csv"
)

// Options controls a conversion. See internal/convert.Options.
type Options = convert.Options

// Result holds the outcome of a conversion.
type Result = convert.Result

// Checksum is the SHA-256 digest of an output file.
type Checksum = convert.Checksum

// ValidationLevel controls header validation strictness.
type ValidationLevel = idx.ValidationLevel

// Validation levels.
const (
	ValidationNormal ValidationLevel = idx.ValidationNormal
	ValidationStrict ValidationLevel = idx.ValidationStrict
	ValidationNone   ValidationLevel = idx.ValidationNone
)

// Header types of the two input files.
type (
	ImageHeader = idx.ImageHeader
	LabelHeader = idx.LabelHeader
)

// Error types.
type (
	FormatError              = idx.FormatError
	SampleCountMismatchError = convert.SampleCountMismatchError
	WriteError               = convert.WriteError
	VerifyError              = convert.VerifyError
)

// Sentinel errors, usable with errors.Is.
var (
	ErrFileNotFound  = idx.ErrFileNotFound
	ErrShortHeader   = idx.ErrShortHeader
	ErrShapeMismatch = idx.ErrShapeMismatch
	ErrLabelCount    = idx.ErrLabelCount
	ErrInvalidMagic  = idx.ErrInvalidMagic
)

// DefaultOptions returns options pointing at the default dataset paths.
func DefaultOptions() Options {
	return Options{
		ImagesPath: DefaultImagesPath,
		LabelsPath: DefaultLabelsPath,
		OutputPath: DefaultOutputPath,
	}
}

// Run converts opts.ImagesPath and opts.LabelsPath into a CSV at
// opts.OutputPath.
func Run(opts Options) (*Result, error) {
	return convert.Run(opts)
}

// Verify checks that opts.OutputPath is exactly the conversion of the inputs.
func Verify(opts Options) error {
	return convert.VerifyFiles(opts)
}

// InspectImages validates an IDX image file and returns its header.
// Only the Mmap and ValidationLevel fields of opts are used.
func InspectImages(path string, opts Options) (ImageHeader, error) {
	images, err := idx.ReadImages(path, idx.Options{Mmap: opts.Mmap, ValidationLevel: opts.ValidationLevel})
	if err != nil {
		return ImageHeader{}, err
	}
	defer images.Close()
	return images.Header, nil
}

// InspectLabels validates an IDX label file and returns its header.
func InspectLabels(path string, opts Options) (LabelHeader, error) {
	labels, err := idx.ReadLabels(path, idx.Options{Mmap: opts.Mmap, ValidationLevel: opts.ValidationLevel})
	if err != nil {
		return LabelHeader{}, err
	}
	defer labels.Close()
	return labels.Header, nil
}
