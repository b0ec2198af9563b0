// Package password hashes and verifies user credentials with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty is returned when asked to hash an empty password.
var ErrEmpty = errors.New("password must not be empty")

// Cost is the bcrypt work factor used by Hash.
var Cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt hash of plain. Two calls with the same input
// return different hashes.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches hash. The comparison is constant time
// and a malformed hash never matches.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
