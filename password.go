package auth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. A mismatch is indistinguishable from an unknown
// identifier at the caller's level.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password hash")
	}
	return nil
}

// NewVerifyCode returns a fresh one-time verification code for accounts
// registered pending confirmation.
func NewVerifyCode() string {
	return uuid.NewString()
}
