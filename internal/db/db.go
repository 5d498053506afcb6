// Package db provides optional PostgreSQL persistence for pipeline runs and
// stage-state history. The pipeline is fully functional without it; the
// durable state of record lives in the workbook's state sheet.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records a new pipeline run under the run ID minted by the
// workbook state store, so both stores correlate on the same identifier.
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, company, roleTitle string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (id, company, role_title, status)
		 VALUES ($1, $2, $3, 'running')`,
		runID, company, roleTitle,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// RecordStageState appends one stage-state transition for a run.
func (db *DB) RecordStageState(ctx context.Context, runID uuid.UUID, state types.StageState) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO stage_states (run_id, status, version, recorded_at)
		 VALUES ($1, $2, $3, $4)`,
		runID, string(state.Status), state.Version, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record stage state: %w", err)
	}
	return nil
}

// CompleteRun marks a pipeline run as finished with the given status.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE pipeline_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// ListStageStates returns the recorded transitions for a run, oldest first.
func (db *DB) ListStageStates(ctx context.Context, runID uuid.UUID) ([]types.StageState, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, version, recorded_at FROM stage_states
		 WHERE run_id = $1 ORDER BY recorded_at`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage states: %w", err)
	}
	defer rows.Close()

	var states []types.StageState
	for rows.Next() {
		var state types.StageState
		var recorded time.Time
		if err := rows.Scan(&state.Status, &state.Version, &recorded); err != nil {
			return nil, err
		}
		state.RunID = runID.String()
		state.UpdatedAt = recorded.Format(time.RFC3339)
		states = append(states, state)
	}
	return states, rows.Err()
}
