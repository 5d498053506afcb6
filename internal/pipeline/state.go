package pipeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-pipeline/internal/sheets"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// ErrVersionConflict is returned when a state write-back observes a version
// other than the one it loaded. The three stages are invoked sequentially in
// practice, but a concurrent trigger would otherwise silently lose updates.
var ErrVersionConflict = fmt.Errorf("stage state version conflict")

// stateHeader is the state sheet's header row.
var stateHeader = []string{"Run ID", "Status", "Version", "Updated At"}

// StateStore persists the durable stage-state record in the workbook.
type StateStore struct {
	tab   sheets.Store
	table string
}

// NewStateStore creates a state store over the named table.
func NewStateStore(tab sheets.Store, table string) *StateStore {
	return &StateStore{tab: tab, table: table}
}

// Load reads the current state, or returns nil when none has been recorded.
func (s *StateStore) Load() (*types.StageState, error) {
	rows, err := s.tab.ReadAllRows(s.table)
	if err != nil || len(rows) < 2 {
		// Missing sheet or header-only sheet means no state yet.
		return nil, nil
	}

	row := rows[1]
	state := &types.StageState{}
	if len(row) > 0 {
		state.RunID = row[0]
	}
	if len(row) > 1 {
		state.Status = types.StageStatus(row[1])
	}
	if len(row) > 2 {
		state.Version, _ = strconv.Atoi(row[2])
	}
	if len(row) > 3 {
		state.UpdatedAt = row[3]
	}
	return state, nil
}

// Transition moves the state to next, enforcing transition legality and the
// optimistic version stamp. A fresh run ID is minted when scoring restarts
// the pipeline from the top.
func (s *StateStore) Transition(next types.StageStatus) (*types.StageState, error) {
	current, err := s.Load()
	if err != nil {
		return nil, err
	}

	var status types.StageStatus
	version := 0
	runID := ""
	if current != nil {
		status = current.Status
		version = current.Version
		runID = current.RunID
	}

	if !status.CanTransition(next) {
		return nil, fmt.Errorf("illegal stage transition %q -> %q", status, next)
	}
	if next == types.StatusScored || runID == "" {
		runID = uuid.NewString()
	}

	state := &types.StageState{
		RunID:     runID,
		Status:    next,
		Version:   version + 1,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.save(state, version); err != nil {
		return nil, err
	}
	return state, nil
}

// save writes the state row, failing on a version mismatch.
func (s *StateStore) save(state *types.StageState, expectedVersion int) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	if current != nil && current.Version != expectedVersion {
		return fmt.Errorf("%w: expected version %d, found %d", ErrVersionConflict, expectedVersion, current.Version)
	}

	if err := s.tab.CreateOrReplaceTable(s.table, stateHeader); err != nil {
		return fmt.Errorf("failed to recreate state sheet: %w", err)
	}
	row := []string{state.RunID, string(state.Status), strconv.Itoa(state.Version), state.UpdatedAt}
	if err := s.tab.WriteRows(s.table, [][]string{row}, 2); err != nil {
		return fmt.Errorf("failed to write state row: %w", err)
	}
	return nil
}
