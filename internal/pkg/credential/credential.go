package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const (
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	lowerAlnum   = "abcdefghijklmnopqrstuvwxyz0123456789"
	upperAlnum   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	symbols      = "!@#$%^&*"
	digits       = "0123456789"

	SessionTokenLength  = 64
	PasswordLength      = 12
	ExtensionBaseLength = 6
	ExtensionSuffixLen  = 4
	RedeemCodeLength    = 8
)

func randomString(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

// SessionToken returns a 64-character alphanumeric token.
func SessionToken() (string, error) {
	return randomString(alphanumeric, SessionTokenLength)
}

// Password returns a random password drawn from letters, digits and symbols.
func Password() (string, error) {
	return randomString(alphanumeric+symbols, PasswordLength)
}

// Extension returns a login alias such as "k3x9qa4821".
func Extension() (string, error) {
	base, err := randomString(lowerAlnum, ExtensionBaseLength)
	if err != nil {
		return "", err
	}
	suffix, err := randomString(digits, ExtensionSuffixLen)
	if err != nil {
		return "", err
	}
	return base + suffix, nil
}

// AccountNumber returns a numeric wallet account number.
func AccountNumber(length int) (string, error) {
	return randomString(digits, length)
}

// Hash returns the hex sha256 of a token for storage lookups.
func Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RedeemCode returns a code shown to students, without look-alike characters.
func RedeemCode() (string, error) {
	return randomString(upperAlnum, RedeemCodeLength)
}
