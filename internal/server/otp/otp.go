// Package otp generates and digests the numeric one-time codes used for
// email verification. Plaintext codes exist only in memory and in the
// outbound mail; storage sees the SHA-256 digest only.
package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"math/big"
	"strings"
)

const (
	MinDigits = 4
	MaxDigits = 10
)

// Generate returns a fixed-length decimal code. Each digit is drawn
// independently and uniformly from 0-9 via crypto/rand.
func Generate(digits int) (string, error) {
	if digits < MinDigits || digits > MaxDigits {
		return "", errors.New("invalid otp digits")
	}

	var b strings.Builder
	b.Grow(digits)

	max := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	return b.String(), nil
}

// Digest returns the SHA-256 digest of the plaintext code.
func Digest(code string) []byte {
	sum := sha256.Sum256([]byte(code))
	return sum[:]
}

// Matches compares a candidate code against a stored digest in constant time.
func Matches(code string, digest []byte) bool {
	candidate := sha256.Sum256([]byte(code))
	return subtle.ConstantTimeCompare(candidate[:], digest) == 1
}
