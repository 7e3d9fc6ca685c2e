// Package apperr defines the failure kinds the core operations report.
// Services wrap one of the sentinel kinds with context; the HTTP layer
// maps kinds to status codes without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

func Unauthorized(format string, a ...any) error {
	return wrap(ErrUnauthorized, format, a...)
}

func NotFound(format string, a ...any) error {
	return wrap(ErrNotFound, format, a...)
}

func Validation(format string, a ...any) error {
	return wrap(ErrValidation, format, a...)
}

func Conflict(format string, a ...any) error {
	return wrap(ErrConflict, format, a...)
}

func wrap(kind error, format string, a ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), kind)
}
