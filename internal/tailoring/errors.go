package tailoring

import "fmt"

// TailoringError represents a tailoring response that failed the expected-shape
// contract, or an untailorable input.
type TailoringError struct {
	Reason    string
	RawOutput string
	Cause     error
}

func (e *TailoringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tailoring error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("tailoring error: %s", e.Reason)
}

func (e *TailoringError) Unwrap() error {
	return e.Cause
}
