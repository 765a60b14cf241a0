package core

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Hash represents a deterministic content hash
type Hash string

// NewHash computes a SHA256 hash over ordered string parts.
// The same parts in the same order always produce the same hash,
// which is what makes batch fingerprints replayable.
func NewHash(parts ...string) Hash {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return Hash(fmt.Sprintf("%x", sum))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}
