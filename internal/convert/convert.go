package convert

import (
	"fmt"
	"io"

	"github.com/born-ml/idxcsv/internal/idx"
)

// Options controls a full IDX to CSV conversion.
type Options struct {
	ImagesPath string // required: IDX image file
	LabelsPath string // required: IDX label file
	OutputPath string // required: CSV destination, created or replaced

	Limit           int                 // write only the first Limit samples (0 = all)
	Mmap            bool                // memory-map the input files
	ValidationLevel idx.ValidationLevel // header validation strictness
	Checksum        bool                // compute the SHA-256 of the written file
}

// Result holds the outcome of a conversion.
type Result struct {
	Samples     int    // rows written
	Features    int    // pixel columns per row (R*C)
	OutputPath  string // where the rows went
	ImageHeader idx.ImageHeader
	LabelHeader idx.LabelHeader
	Checksum    Checksum // zero unless Options.Checksum is set
	HasChecksum bool
}

// readOptions maps conversion options onto reader options.
func (o Options) readOptions() idx.Options {
	return idx.Options{Mmap: o.Mmap, ValidationLevel: o.ValidationLevel}
}

// Open reads both input files and checks that they describe the same number
// of samples. The caller must close both on success.
func Open(opts Options) (*idx.Images, *idx.Labels, error) {
	images, err := idx.ReadImages(opts.ImagesPath, opts.readOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load images: %w", err)
	}

	labels, err := idx.ReadLabels(opts.LabelsPath, opts.readOptions())
	if err != nil {
		_ = images.Close()
		return nil, nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if err := CheckCounts(images, labels); err != nil {
		_ = images.Close()
		_ = labels.Close()
		return nil, nil, err
	}

	return images, labels, nil
}

// Run executes the conversion: read images and labels, check the sample
// counts, then write the CSV. Nothing is created at OutputPath unless every
// row was written.
func Run(opts Options) (*Result, error) {
	if opts.ImagesPath == "" || opts.LabelsPath == "" || opts.OutputPath == "" {
		return nil, fmt.Errorf("images, labels and output paths are required")
	}

	images, labels, err := Open(opts)
	if err != nil {
		return nil, err
	}
	defer images.Close()
	defer labels.Close()

	var written int
	err = writeFileAtomic(opts.OutputPath, func(w io.Writer) error {
		n, err := WriteCSV(w, images, labels, opts.Limit)
		written = n
		if err != nil {
			return &WriteError{Path: opts.OutputPath, Op: "write", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Samples:     written,
		Features:    images.RowSize(),
		OutputPath:  opts.OutputPath,
		ImageHeader: images.Header,
		LabelHeader: labels.Header,
	}

	if opts.Checksum {
		sum, err := ComputeFileChecksum(opts.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("checksum: %w", err)
		}
		result.Checksum = sum
		result.HasChecksum = true
	}

	return result, nil
}

// VerifyFiles re-reads the inputs named by opts and checks OutputPath
// against them.
func VerifyFiles(opts Options) error {
	images, labels, err := Open(opts)
	if err != nil {
		return err
	}
	defer images.Close()
	defer labels.Close()

	return Verify(opts.OutputPath, images, labels, opts.Limit)
}
