package identity

import "errors"

var (
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword indicates the password is below the minimum length.
	ErrWeakPassword = errors.New("password should be at least 6 characters")
)
