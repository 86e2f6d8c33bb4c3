package utils

import (
	"crypto/rand"
	"fmt"
)

// suffixAlphabet is the unambiguous alphabet used for username suffixes:
// lowercase letters and digits minus the easily confused 0/o, 1/l/i pairs.
const suffixAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

// SuffixLength is the fixed length of a generated username suffix.
const SuffixLength = 5

// GenerateSuffix returns a fixed-length random string drawn from the
// unambiguous suffix alphabet. It is used to disambiguate username handles
// derived from colliding email local-parts.
func GenerateSuffix() (string, error) {
	buf := make([]byte, SuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating random suffix: %w", err)
	}

	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}

	return string(buf), nil
}
