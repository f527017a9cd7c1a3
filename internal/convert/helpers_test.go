package convert

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/idxcsv/internal/idx"
)

// writeIDX writes a big-endian header followed by payload into dir/name.
func writeIDX(t *testing.T, dir, name string, header []uint32, payload []byte) string {
	t.Helper()

	buf := make([]byte, 0, 4*len(header)+len(payload))
	for _, v := range header {
		buf = binary.BigEndian.AppendUint32(buf, v)
	}
	buf = append(buf, payload...)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

// scenario writes the 2-sample, 2x2 dataset used across tests and returns
// options pointing at it.
func scenario(t *testing.T) Options {
	t.Helper()

	dir := t.TempDir()
	return Options{
		ImagesPath: writeIDX(t, dir, "images", []uint32{idx.MagicImages, 2, 2, 2}, []byte{1, 2, 3, 4, 5, 6, 7, 8}),
		LabelsPath: writeIDX(t, dir, "labels", []uint32{idx.MagicLabels, 2}, []byte{7, 3}),
		OutputPath: filepath.Join(dir, "out.csv"),
	}
}

// load opens the inputs named by opts.
func load(t *testing.T, opts Options) (*idx.Images, *idx.Labels) {
	t.Helper()

	images, err := idx.ReadImages(opts.ImagesPath, opts.readOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = images.Close() })

	labels, err := idx.ReadLabels(opts.LabelsPath, opts.readOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = labels.Close() })

	return images, labels
}
