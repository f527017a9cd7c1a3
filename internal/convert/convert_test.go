package convert

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/idxcsv/internal/idx"
)

func TestRun(t *testing.T) {
	opts := scenario(t)

	result, err := Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Samples)
	assert.Equal(t, 4, result.Features)
	assert.Equal(t, opts.OutputPath, result.OutputPath)
	assert.Equal(t, uint32(idx.MagicImages), result.ImageHeader.Magic)
	assert.Equal(t, uint32(2), result.LabelHeader.Count)
	assert.False(t, result.HasChecksum)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "7,1,2,3,4\n3,5,6,7,8\n", string(got))
}

func TestRun_Limit(t *testing.T) {
	opts := scenario(t)
	opts.Limit = 1

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Samples)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "7,1,2,3,4\n", string(got))
}

func TestRun_SampleCountMismatch(t *testing.T) {
	dir := t.TempDir()
	pixels := make([]byte, 5*2*2)
	opts := Options{
		ImagesPath: writeIDX(t, dir, "images", []uint32{idx.MagicImages, 5, 2, 2}, pixels),
		LabelsPath: writeIDX(t, dir, "labels", []uint32{idx.MagicLabels, 4}, []byte{0, 1, 2, 3}),
		OutputPath: filepath.Join(dir, "out.csv"),
	}

	_, err := Run(opts)
	require.Error(t, err)

	var mismatch *SampleCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 5, mismatch.Images)
	assert.Equal(t, 4, mismatch.Labels)

	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no output file on mismatch")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary file left behind")
}

func TestRun_ExistingOutputKeptOnFailure(t *testing.T) {
	opts := scenario(t)
	require.NoError(t, os.WriteFile(opts.OutputPath, []byte("previous\n"), 0o600))

	opts.LabelsPath = writeIDX(t, filepath.Dir(opts.OutputPath), "labels3", []uint32{idx.MagicLabels, 3}, []byte{1, 2, 3})
	_, err := Run(opts)
	require.Error(t, err)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(got))
}

func TestRun_OverwritesExistingOutput(t *testing.T) {
	opts := scenario(t)
	require.NoError(t, os.WriteFile(opts.OutputPath, []byte(strings.Repeat("x", 1000)), 0o600))

	_, err := Run(opts)
	require.NoError(t, err)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "7,1,2,3,4\n3,5,6,7,8\n", string(got))
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing images", func(t *testing.T) {
		opts := scenario(t)
		opts.ImagesPath = filepath.Join(t.TempDir(), "nope")
		_, err := Run(opts)
		assert.ErrorIs(t, err, idx.ErrFileNotFound)
	})

	t.Run("missing labels", func(t *testing.T) {
		opts := scenario(t)
		opts.LabelsPath = filepath.Join(t.TempDir(), "nope")
		_, err := Run(opts)
		assert.ErrorIs(t, err, idx.ErrFileNotFound)
	})

	t.Run("truncated image header", func(t *testing.T) {
		opts := scenario(t)
		require.NoError(t, os.WriteFile(opts.ImagesPath, []byte{0, 0, 8, 3, 0, 0}, 0o600))
		_, err := Run(opts)
		assert.ErrorIs(t, err, idx.ErrShortHeader)

		var fe *idx.FormatError
		assert.ErrorAs(t, err, &fe)
	})

	t.Run("unwritable output", func(t *testing.T) {
		opts := scenario(t)
		opts.OutputPath = filepath.Join(t.TempDir(), "missing-dir", "out.csv")
		_, err := Run(opts)

		var we *WriteError
		require.ErrorAs(t, err, &we)
		assert.Equal(t, "create", we.Op)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("empty paths", func(t *testing.T) {
		_, err := Run(Options{})
		assert.Error(t, err)
	})
}

func TestRun_Idempotent(t *testing.T) {
	opts := scenario(t)
	opts.Checksum = true

	first, err := Run(opts)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)

	second, err := Run(opts)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)

	assert.True(t, first.HasChecksum)
	assert.Equal(t, first.Checksum, second.Checksum)
	assert.Equal(t, firstBytes, secondBytes)
	assert.Equal(t, ComputeChecksum(firstBytes), first.Checksum)
}

func TestRun_MmapMatchesHeap(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(42))

	const n, rows, cols = 50, 7, 5
	pixels := make([]byte, n*rows*cols)
	labels := make([]byte, n)
	rng.Read(pixels)
	rng.Read(labels)

	base := Options{
		ImagesPath: writeIDX(t, dir, "images", []uint32{idx.MagicImages, n, rows, cols}, pixels),
		LabelsPath: writeIDX(t, dir, "labels", []uint32{idx.MagicLabels, n}, labels),
		Checksum:   true,
	}

	heap := base
	heap.OutputPath = filepath.Join(dir, "heap.csv")
	mapped := base
	mapped.OutputPath = filepath.Join(dir, "mmap.csv")
	mapped.Mmap = true

	r1, err := Run(heap)
	require.NoError(t, err)
	r2, err := Run(mapped)
	require.NoError(t, err)
	assert.Equal(t, r1.Checksum, r2.Checksum)

	// Every line has 1+R*C fields in [0,255] and round-trips to the inputs.
	data, err := os.ReadFile(heap.OutputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, n)
	for i, line := range lines {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 1+rows*cols)
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, 0)
			require.LessOrEqual(t, v, 255)
			if j == 0 {
				assert.Equal(t, int(labels[i]), v)
			} else {
				assert.Equal(t, int(pixels[i*rows*cols+j-1]), v)
			}
		}
	}

	assert.NoError(t, VerifyFiles(heap))
	assert.NoError(t, VerifyFiles(mapped))
}

func TestRun_OverflowingShape(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		// 2^16 * 2^24 * 2^24 wraps to 0 in 64 bits, matching the empty payload.
		ImagesPath: writeIDX(t, dir, "images", []uint32{idx.MagicImages, 1 << 16, 1 << 24, 1 << 24}, nil),
		LabelsPath: writeIDX(t, dir, "labels", []uint32{idx.MagicLabels, 1 << 16}, make([]byte, 1<<16)),
		OutputPath: filepath.Join(dir, "out.csv"),
	}

	var err error
	require.NotPanics(t, func() { _, err = Run(opts) })
	assert.ErrorIs(t, err, idx.ErrShapeMismatch)

	var fe *idx.FormatError
	assert.ErrorAs(t, err, &fe)

	_, statErr := os.Stat(opts.OutputPath)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no output file on a bad shape")
}

func TestRun_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		ImagesPath: writeIDX(t, dir, "images", []uint32{idx.MagicImages, 0, 28, 28}, nil),
		LabelsPath: writeIDX(t, dir, "labels", []uint32{idx.MagicLabels, 0}, nil),
		OutputPath: filepath.Join(dir, "out.csv"),
	}

	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Samples)

	got, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRun_LabelCountCheck(t *testing.T) {
	opts := scenario(t)
	// Header says 3 labels, 2 follow; counts still match the 2 images when unchecked.
	opts.LabelsPath = writeIDX(t, filepath.Dir(opts.OutputPath), "labels-bad", []uint32{idx.MagicLabels, 3}, []byte{7, 3})

	_, err := Run(opts)
	assert.ErrorIs(t, err, idx.ErrLabelCount)

	opts.ValidationLevel = idx.ValidationNone
	result, err := Run(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Samples)
}

func TestRun_Strict(t *testing.T) {
	opts := scenario(t)
	opts.ImagesPath = writeIDX(t, filepath.Dir(opts.OutputPath), "images-bad", []uint32{42, 2, 2, 2}, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	_, err := Run(opts)
	require.NoError(t, err)

	opts.ValidationLevel = idx.ValidationStrict
	_, err = Run(opts)
	assert.ErrorIs(t, err, idx.ErrInvalidMagic)
}
