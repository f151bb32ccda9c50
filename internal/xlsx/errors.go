package xlsx

import (
	"fmt"
)

// TemplateError means the server-side template is missing or unusable.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string { return e.Err.Error() }
func (e *TemplateError) Unwrap() error { return e.Err }

// RenderError means placeholder substitution failed on one sheet.
type RenderError struct {
	Sheet string
	Err   error
}

func (e *RenderError) Error() string { return fmt.Sprintf("fill sheet %q: %s", e.Sheet, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

// SaveError means the finished workbook could not be serialized.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string { return fmt.Sprintf("save workbook: %s", e.Err) }
func (e *SaveError) Unwrap() error { return e.Err }
