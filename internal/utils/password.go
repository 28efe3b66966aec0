package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned by [HashPassword] when the plaintext is empty.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword generates a bcrypt hash of the given plaintext password.
//
// bcrypt embeds a random per-call salt in its output, so hashing the same
// password twice yields different strings. The stored value is opaque:
// only [VerifyPassword] can compare against it.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. A malformed or truncated stored hash never panics or errors
// outward; it simply yields false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
