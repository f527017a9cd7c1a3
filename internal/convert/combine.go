package convert

import (
	"github.com/born-ml/idxcsv/internal/idx"
)

// CheckCounts fails with *SampleCountMismatchError unless both files hold
// the same number of samples.
func CheckCounts(images *idx.Images, labels *idx.Labels) error {
	if images.Count() != labels.Count() {
		return &SampleCountMismatchError{Images: images.Count(), Labels: labels.Count()}
	}
	return nil
}

// Combine builds the labeled rows in memory: row i is label i followed by
// the R*C pixels of image i. Row order is the input order.
func Combine(images *idx.Images, labels *idx.Labels) ([][]byte, error) {
	if err := CheckCounts(images, labels); err != nil {
		return nil, err
	}

	width := images.RowSize() + 1
	flat := make([]byte, images.Count()*width)
	rows := make([][]byte, images.Count())
	for i := range rows {
		row := flat[i*width : (i+1)*width : (i+1)*width]
		row[0] = labels.Values[i]
		copy(row[1:], images.Row(i))
		rows[i] = row
	}

	return rows, nil
}

// sampleLimit returns how many samples to emit given a limit (0 = all).
func sampleLimit(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
