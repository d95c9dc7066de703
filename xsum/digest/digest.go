// Package digest computes content digests used as integrity markers.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HexLength is the length of an encoded digest: 32 bytes as lowercase hex.
const HexLength = sha256.Size * 2

// Provider computes a content digest for a file's bytes. Implementations
// must read the file fresh on every call; digests are never cached.
type Provider interface {
	SumFile(path string) (string, error)
}

// SHA256Provider digests a file's full byte content with SHA-256.
type SHA256Provider struct{}

// NewSHA256Provider creates a new SHA-256 digest provider.
func NewSHA256Provider() *SHA256Provider {
	return &SHA256Provider{}
}

// SumFile returns the lowercase hex SHA-256 digest of the file at path.
// The file handle is held only for the duration of the read.
func (p *SHA256Provider) SumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to calculate checksum for %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// IsWellFormed reports whether s is a validly formatted digest:
// exactly 64 lowercase hexadecimal characters.
func IsWellFormed(s string) bool {
	if len(s) != HexLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
