// Package checksum computes and validates SHA-256 file digests.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds per-read memory while hashing large archives.
const chunkSize = 8 * 1024

// digestLength is the length of a hex-encoded SHA-256 digest.
const digestLength = sha256.Size * 2

// File returns the lowercase hex SHA-256 digest of the file at path.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsValid reports whether s has the shape of a SHA-256 digest:
// exactly 64 hexadecimal characters, case-insensitive.
func IsValid(s string) bool {
	if len(s) != digestLength {
		return false
	}
	for _, ch := range s {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}
