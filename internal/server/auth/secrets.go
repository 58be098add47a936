package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	codeMin   = 100000
	codeRange = 900000

	TemporaryPasswordLength = 10
	passwordAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// randReader is swapped in tests.
var randReader io.Reader = rand.Reader

// GenerateVerificationCode returns a uniformly random six digit code.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(randReader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// GenerateTemporaryPassword returns length characters drawn uniformly, with
// replacement, from the 62 character alphanumeric alphabet.
func GenerateTemporaryPassword(length int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(randReader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b), nil
}
