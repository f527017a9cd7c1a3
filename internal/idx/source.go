package idx

import (
	"errors"
	"fmt"
	"os"
)

// source holds the full contents of an input file, either heap-allocated
// or memory-mapped.
type source struct {
	path   string
	data   []byte
	mapped bool
	closed bool
}

// openSource loads the whole file at path. The file handle itself is closed
// before returning in both modes; a mapping stays valid after close.
func openSource(path string, useMmap bool) (*source, error) {
	if !useMmap {
		//nolint:gosec // G304: dataset paths come from the command line
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, openError(path, err)
		}
		return &source{path: path, data: data}, nil
	}

	//nolint:gosec // G304: dataset paths come from the command line
	file, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, openError(path, err)
	}
	if !stat.Mode().IsRegular() {
		return nil, openError(path, errNotRegular)
	}

	// Zero-length mappings are rejected by the OS.
	if stat.Size() == 0 {
		return &source{path: path}, nil
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		return nil, openError(path, fmt.Errorf("mmap failed: %w", err))
	}

	return &source{path: path, data: data, mapped: true}, nil
}

var errNotRegular = errors.New("not a regular file")

// openError classifies every failure to open or read an input path as
// ErrFileNotFound, keeping the OS error in the chain.
func openError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
}

// Close releases the mapping, if any.
func (s *source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.mapped && s.data != nil {
		err = munmapFile(s.data)
	}
	s.data = nil
	return err
}
