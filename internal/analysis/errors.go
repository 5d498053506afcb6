package analysis

import "fmt"

// ParseError represents a job-analysis response that failed the expected-shape contract.
type ParseError struct {
	Message   string
	RawOutput string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job analysis parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job analysis parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
