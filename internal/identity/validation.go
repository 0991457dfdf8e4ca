package identity

import (
	"net/mail"
	"strings"
)

// MinPasswordLength matches the hosted provider's minimum.
const MinPasswordLength = 6

// ValidateCredentials checks the shape of a sign-up or sign-in request
// before it reaches the provider backend.
func ValidateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
