package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough for logs and file names
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// HashRows fingerprints an ordered list of integer rows (draws or games).
// Row order matters; the caller canonicalizes rows beforehand.
func HashRows(rows [][]int) Hash {
	var data strings.Builder
	for _, row := range rows {
		for i, n := range row {
			if i > 0 {
				data.WriteByte(',')
			}
			data.WriteString(fmt.Sprintf("%d", n))
		}
		data.WriteByte(';')
	}
	return NewHash([]byte(data.String()))
}
