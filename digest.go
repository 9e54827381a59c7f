package audiohash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// Digest is the lowercase hex SHA-256 of a file's contents (64 characters).
type Digest string

// Files are streamed through the hash in fixed-size chunks so large audio
// files are never held fully in memory.
const hashChunkSize = 8 * 1024

// HashFile computes the content digest of the file at path. It returns the
// digest and the number of bytes read.
func HashFile(path string) (Digest, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.CopyBuffer(h, f, make([]byte, hashChunkSize))
	if err != nil {
		return "", 0, err
	}
	return Digest(hex.EncodeToString(h.Sum(nil))), n, nil
}

// Prefix returns the first k hex characters of the digest.
func (d Digest) Prefix(k int) string {
	if k > len(d) {
		k = len(d)
	}
	return string(d[:k])
}

// IsHashedName reports whether name already carries a digest-shaped name:
// the given extension preceded by a stem of exactly k lowercase hex digits.
// Files that pass are the output of a previous run and are left untouched.
func IsHashedName(name, ext string, k int) bool {
	stem, ok := strings.CutSuffix(name, ext)
	if !ok || len(stem) != k {
		return false
	}
	for _, c := range stem {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
