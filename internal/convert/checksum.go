package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Checksum is the SHA-256 digest of an output file.
type Checksum [sha256.Size]byte

// String returns the lowercase hex form, as printed by sha256sum.
func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

// ComputeChecksum computes the SHA-256 checksum of data.
func ComputeChecksum(data []byte) Checksum {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes the SHA-256 checksum from an io.Reader
// without loading the content into memory.
func ComputeChecksumReader(r io.Reader) (Checksum, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return Checksum{}, err
	}
	var sum Checksum
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// ComputeFileChecksum computes the SHA-256 checksum of the file at path.
func ComputeFileChecksum(path string) (Checksum, error) {
	//nolint:gosec // G304: path is the file we just wrote
	file, err := os.Open(path)
	if err != nil {
		return Checksum{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ComputeChecksumReader(file)
}
