package llm

import "fmt"

// CompletionError represents a transport or provider failure during a
// completion call. HTTPStatus is zero when the failure happened before a
// response was received.
type CompletionError struct {
	HTTPStatus int
	Message    string
	Cause      error
}

func (e *CompletionError) Error() string {
	switch {
	case e.HTTPStatus != 0 && e.Cause != nil:
		return fmt.Sprintf("completion failed (HTTP %d): %s: %v", e.HTTPStatus, e.Message, e.Cause)
	case e.HTTPStatus != 0:
		return fmt.Sprintf("completion failed (HTTP %d): %s", e.HTTPStatus, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("completion failed: %s: %v", e.Message, e.Cause)
	default:
		return fmt.Sprintf("completion failed: %s", e.Message)
	}
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}
