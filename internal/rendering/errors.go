// Package rendering maps the final resume record onto a styled output
// document via placeholder substitution and templated item layout.
package rendering

import "fmt"

// RenderError represents a template or output-backend fault. Rendering failure
// aborts the whole render and removes any partially created output artifact.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
