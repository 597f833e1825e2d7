// Package otp generates fixed-length numeric one-time passcodes.
//
// Codes are strings so that leading zeros survive storage and transport;
// "000000" is exactly as likely as any other six-digit code.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
)

// DefaultDigits is the code length used by the authentication flows.
const DefaultDigits = 6

var ten = big.NewInt(10)

// Generator produces random numeric codes of a fixed length.
type Generator struct {
	digits int
}

// NewGenerator returns a Generator producing codes of the given length.
// A non-positive length falls back to DefaultDigits.
func NewGenerator(digits int) *Generator {
	if digits <= 0 {
		digits = DefaultDigits
	}

	return &Generator{digits: digits}
}

// Generate draws each digit independently from crypto/rand so the code is
// uniform over [0, 10^digits).
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.digits)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0') + byte(n.Int64())
	}

	return string(buf), nil
}

// Match compares a submitted code against the stored one in constant time.
// No trimming or normalization is applied; the comparison is exact.
func Match(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
