package filler

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a fill-in failure.
type Kind int

const (
	// KindInput - bad upload or mapping.
	KindInput Kind = iota
	// KindTemplate - server template missing or unusable.
	KindTemplate
	// KindRender - substitution failed on a sheet.
	KindRender
	// KindSave - result serialization failed.
	KindSave
)

// Error carries the failure kind alongside the cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ErrNoFile is returned when a request carries no uploaded workbook.
var ErrNoFile = newError(KindInput, "file is required")

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// StatusCode maps a FillIn error to an HTTP status.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
