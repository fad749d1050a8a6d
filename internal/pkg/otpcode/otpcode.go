// Package otpcode generates the short one-time codes emailed to users.
//
// Codes are drawn uniformly from the digit alphabet using crypto/rand, so a
// code is never predictable from previously issued codes. The Generator
// interface exists so tests can inject a deterministic sequence.
package otpcode

import (
	"crypto/rand"
	"math/big"
)

// DefaultLength is the number of digits in a generated code.
const DefaultLength = 6

const digits = "0123456789"

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes from crypto/rand.
type Numeric struct {
	length int
}

// NewNumeric returns a Numeric generator producing codes of the given length.
// Non-positive lengths fall back to DefaultLength.
func NewNumeric(length int) *Numeric {
	if length <= 0 {
		length = DefaultLength
	}
	return &Numeric{length: length}
}

// Generate returns a new random code.
func (n *Numeric) Generate() (string, error) {
	max := big.NewInt(int64(len(digits)))
	buf := make([]byte, n.length)
	for i := range buf {
		// rand.Int is uniform over [0, len(digits)); per-digit draws keep
		// the distribution uniform for any code length.
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = digits[idx.Int64()]
	}
	return string(buf), nil
}
