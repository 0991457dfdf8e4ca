package roster

import "errors"

var (
	// ErrInvalidInput indicates a malformed add request.
	ErrInvalidInput = errors.New("invalid student input")
	// ErrStudentNotFound indicates the requested student doesn't exist.
	ErrStudentNotFound = errors.New("student not found")
)
