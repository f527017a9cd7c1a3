package convert

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/born-ml/idxcsv/internal/idx"
)

const (
	bufSize    = 4 << 20 // 4 MiB
	flushEvery = 10_000  // rows between csv.Writer error checks
)

// decimal holds the base-10 text of every byte value.
var decimal [256]string

func init() {
	for i := range decimal {
		decimal[i] = strconv.Itoa(i)
	}
}

// WriteCSV streams the labeled rows to w, one line per sample, and returns
// the number of rows written. limit > 0 caps the number of samples.
//
// Sample counts are checked before the first byte is written.
func WriteCSV(w io.Writer, images *idx.Images, labels *idx.Labels, limit int) (int, error) {
	if err := CheckCounts(images, labels); err != nil {
		return 0, err
	}

	bw := bufio.NewWriterSize(w, bufSize)
	writer := csv.NewWriter(bw)

	n := sampleLimit(images.Count(), limit)
	if n == 0 {
		return 0, nil
	}
	record := make([]string, images.RowSize()+1)

	for i := 0; i < n; i++ {
		record[0] = decimal[labels.Values[i]]
		for j, px := range images.Row(i) {
			record[j+1] = decimal[px]
		}
		if err := writer.Write(record); err != nil {
			return i, fmt.Errorf("write row %d: %w", i, err)
		}
		if (i+1)%flushEvery == 0 {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return i, fmt.Errorf("flush: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}

	return n, nil
}

// writeFileAtomic creates path by writing into a uniquely named temporary
// file next to it and renaming it on success. On failure the temporary file
// is removed and any existing file at path is left untouched.
//
// A symlink at path is followed, so the link survives and its target is
// replaced. An existing file keeps its permission bits; ownership is that of
// the current user.
func writeFileAtomic(path string, fill func(w io.Writer) error) (err error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	mode := fs.FileMode(0o644)
	info, statErr := os.Stat(target)
	if statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp := filepath.Join(filepath.Dir(target), fmt.Sprintf(".%s.%s.tmp", filepath.Base(target), uuid.NewString()))

	//nolint:gosec // G304: output path comes from the command line
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	defer func() {
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmp)
		}
	}()

	// The umask applied at create must not narrow an existing file's mode.
	if statErr == nil {
		if err := file.Chmod(mode); err != nil {
			return &WriteError{Path: path, Op: "chmod", Err: err}
		}
	}
	if err := fill(file); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return &WriteError{Path: path, Op: "sync", Err: err}
	}
	if err := file.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		return &WriteError{Path: path, Op: "rename", Err: err}
	}

	return nil
}
