package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const cost = 12

// ErrEmpty is returned when hashing an empty secret.
var ErrEmpty = errors.New("password is empty")

// Hash hashes a password or wallet PIN using bcrypt
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmpty
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Verify compares password with hash
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
