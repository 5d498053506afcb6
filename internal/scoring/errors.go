package scoring

import "fmt"

// ScoringError represents a scoring response that failed the expected-shape
// contract, or an unscoreable input. RawOutput carries the model's verbatim
// response for diagnosis.
type ScoringError struct {
	Reason    string
	RawOutput string
	Cause     error
}

func (e *ScoringError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scoring error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("scoring error: %s", e.Reason)
}

func (e *ScoringError) Unwrap() error {
	return e.Cause
}
