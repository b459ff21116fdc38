package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing any of these invalidates every stored hash.
const (
	pbkdf2Iterations = 310000
	pbkdf2KeyLength  = 32
	saltLength       = 16
)

// HashPassword derives a key from the password under a fresh random salt.
func HashPassword(password string) (salt, hash []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash = pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return salt, hash, nil
}

// VerifyPassword recomputes the derived key for the submitted password under
// the stored salt and compares it to the stored hash in constant time.
// A mismatch returns false, never an error.
func VerifyPassword(password string, salt, storedHash []byte) bool {
	if len(salt) == 0 || len(storedHash) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return subtle.ConstantTimeCompare(derived, storedHash) == 1
}
