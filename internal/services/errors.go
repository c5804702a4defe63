package services

import (
	"errors"
	"fmt"
)

// ErrNotFound means the addressed row does not exist in the current listing.
var ErrNotFound = errors.New("not found")

// ValidationError carries the client-facing message for a 400 response.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
