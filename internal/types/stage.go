package types

import "fmt"

// StageStatus is the durable pipeline state recorded between the three
// separately-invoked stages. A human approval step gates each transition.
type StageStatus string

// Stage statuses, in order.
const (
	StatusScored            StageStatus = "scored"
	StatusAwaitingSelection StageStatus = "awaiting_selection"
	StatusTailored          StageStatus = "tailored"
	StatusAssembled         StageStatus = "assembled"
)

// validTransitions enumerates legal stage-state moves. Scoring may be re-run
// from any state because stage 1 rebuilds the selection sheet from scratch.
var validTransitions = map[StageStatus][]StageStatus{
	"":                      {StatusScored},
	StatusScored:            {StatusScored, StatusAwaitingSelection},
	StatusAwaitingSelection: {StatusScored, StatusTailored},
	StatusTailored:          {StatusScored, StatusAssembled},
	StatusAssembled:         {StatusScored},
}

// CanTransition reports whether moving from the receiver to next is legal.
func (s StageStatus) CanTransition(next StageStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StageState is the durable job record correlating a run with its current status.
// Version is an optimistic concurrency stamp bumped on every write-back.
type StageState struct {
	RunID     string      `json:"run_id"`
	Status    StageStatus `json:"status"`
	Version   int         `json:"version"`
	UpdatedAt string      `json:"updated_at"`
}

// StageResult is the structured outcome every stage returns to its caller
// instead of throwing across stage boundaries.
type StageResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// OKResult builds a successful StageResult with a formatted message.
func OKResult(format string, args ...any) StageResult {
	return StageResult{Success: true, Message: fmt.Sprintf(format, args...)}
}

// FailResult builds a failed StageResult with a formatted message.
func FailResult(format string, args ...any) StageResult {
	return StageResult{Success: false, Message: fmt.Sprintf(format, args...)}
}
