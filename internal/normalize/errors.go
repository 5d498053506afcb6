package normalize

import "fmt"

// MalformedInputError represents unparseable or missing structure in the
// source table: no recognizable section header, or an empty backing store.
type MalformedInputError struct {
	Message string
	Cause   error
}

func (e *MalformedInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed input: %s", e.Message)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}
