package convert

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/born-ml/idxcsv/internal/idx"
)

// Verify checks that the CSV at csvPath is exactly the conversion of images
// and labels: one row per sample in input order, the label in column 0 and
// the pixels of that sample in columns 1..R*C. limit has the same meaning as
// in Options.
//
// The first difference is reported as *VerifyError.
func Verify(csvPath string, images *idx.Images, labels *idx.Labels, limit int) error {
	rows, err := Combine(images, labels)
	if err != nil {
		return err
	}
	rows = rows[:sampleLimit(len(rows), limit)]

	//nolint:gosec // G304: path comes from the command line
	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReaderSize(file, bufSize))
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1 // field counts are checked below with a better message

	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("failed to read CSV: %w", err)
		}
		if line > len(rows) {
			return &VerifyError{Row: line, Column: -1, Details: fmt.Sprintf("unexpected row, want %d rows", len(rows))}
		}

		want := rows[line-1]
		if len(record) != len(want) {
			return &VerifyError{
				Row:     line,
				Column:  -1,
				Details: fmt.Sprintf("invalid record length: got %d, want %d", len(record), len(want)),
			}
		}

		for j, field := range record {
			v, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return &VerifyError{Row: line, Column: j, Details: fmt.Sprintf("invalid value %q", field)}
			}
			if byte(v) != want[j] {
				return &VerifyError{Row: line, Column: j, Details: fmt.Sprintf("got %d, want %d", v, want[j])}
			}
		}
	}

	if line != len(rows) {
		return &VerifyError{Details: fmt.Sprintf("got %d rows, want %d", line, len(rows))}
	}

	return nil
}
