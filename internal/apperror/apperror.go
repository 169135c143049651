// Package apperror defines the domain errors shared by the repository, service
// and handler layers.
//
// HOW AN ERROR TRAVELS:
//
//	gormdb   returns apperror.NotFound("post", 7) for gorm.ErrRecordNotFound
//	service  returns it unchanged, or adds context with fmt.Errorf("...: %w", err)
//	handler  calls errors.Is(err, apperror.ErrNotFound) and renders a 404
//
// Wrapping with %w keeps the sentinel reachable, so errors.Is still matches
// after any number of layers have added context. errors.As recovers the
// *AppError itself when the handler needs its Message for the error page.
//
// Layers below the handler never pick HTTP status codes. They return one of
// these errors and the handler translates it (see handler.Renderer.Error).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// AppError pairs a sentinel with a message that is safe to show the user.
type AppError struct {
	Err     error  // sentinel, matched with errors.Is
	Message string // human-readable, safe to show on the error page
	Field   string // optional: form field that caused the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity, e.g. NotFound("user", 7).
func NotFound(resource string, id uint) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports a form value that failed a presence or format check.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// IsNotFound is shorthand for errors.Is(err, ErrNotFound).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
