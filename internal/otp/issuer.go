package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// Generate returns a random 6-digit code in [100000, 999999].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	return fmt.Sprintf("%d", codeMin+n.Int64()), nil
}

// Verify compares the provided code against the issued one. The comparison is
// an exact string match: no trimming, no case folding. An empty issued code
// never matches.
func Verify(issued, provided string) bool {
	if issued == "" {
		return false
	}
	return issued == provided
}
