// Package ticket generates the human-shareable ticket identifiers and
// companion access passwords handed to citizens at complaint intake.
package ticket

import (
	"crypto/rand"
	"fmt"

	"citizendesk/backend/internal/config"
)

const (
	letters       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits        = "0123456789"
	passwordRunes = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O/1/I
)

// NewTicketID returns a fresh ticket identifier in the form
// prefix + one uppercase letter + three digits, e.g. "AGX042".
// Uniqueness is enforced by the database; callers retry on conflict.
func NewTicketID() (string, error) {
	letter, err := pick(letters, 1)
	if err != nil {
		return "", err
	}
	suffix, err := pick(digits, 3)
	if err != nil {
		return "", err
	}
	return config.TicketPrefix + letter + suffix, nil
}

// NewAccessPassword returns a random password from an alphabet with the
// easily confused characters removed.
func NewAccessPassword() (string, error) {
	return pick(passwordRunes, config.AccessPasswordLength)
}

// pick draws n characters uniformly from the alphabet.
func pick(alphabet string, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out), nil
}
