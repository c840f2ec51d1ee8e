package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"citizendesk/backend/internal/config"
)

// ErrInvalidCredentials is returned for any password mismatch. Callers must
// not distinguish which part of the credentials was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword hashes a staff password with bcrypt, enforcing the minimum
// length policy.
func HashPassword(password string) (string, error) {
	if len(password) < config.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", config.MinPasswordLength)
	}
	return HashSecret(password)
}

// HashSecret hashes an arbitrary secret (e.g. a generated complaint access
// password) without the staff length policy.
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), config.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(bytes), nil
}

// CheckSecret compares a plaintext secret against its stored hash.
func CheckSecret(secret, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to check secret: %w", err)
	}
	return nil
}
