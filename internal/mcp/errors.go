package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/rosterdesk/internal/catalog"
	"github.com/ganot/rosterdesk/internal/identity"
	"github.com/ganot/rosterdesk/internal/roster"
)

// ErrSignInRequired gates mutating tools behind authentication.
var ErrSignInRequired = errors.New("sign in required")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass
// through untouched.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrSignInRequired):
		return &APIError{Code: "SIGN_IN_REQUIRED", Message: "sign in required", RecoveryHint: "Call sign_in or sign_up first"}
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &APIError{Code: "INVALID_CREDENTIALS", Message: err.Error(), RecoveryHint: "Check email and password"}
	case errors.Is(err, identity.ErrEmailTaken):
		return &APIError{Code: "EMAIL_TAKEN", Message: err.Error(), RecoveryHint: "Sign in instead, or use another email"}
	case errors.Is(err, identity.ErrInvalidEmail):
		return &APIError{Code: "INVALID_EMAIL", Message: err.Error()}
	case errors.Is(err, identity.ErrWeakPassword):
		return &APIError{Code: "WEAK_PASSWORD", Message: err.Error()}
	case errors.Is(err, roster.ErrStudentNotFound):
		return &APIError{Code: "STUDENT_NOT_FOUND", Message: "student not found", RecoveryHint: "Check the id against list_students"}
	case errors.Is(err, roster.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, catalog.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return err
	}
}
