// Package pipeline orchestrates the three separately-invoked stages: scoring,
// tailoring and assembly. Each stage loads the durable state, verifies the
// transition is legal, does its work against the workbook and writes the state
// back with a bumped version. Stages return a StageResult instead of
// propagating per-item failures; only infrastructure errors abort a stage.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-pipeline/internal/config"
	"github.com/jonathan/resume-pipeline/internal/db"
	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/normalize"
	"github.com/jonathan/resume-pipeline/internal/observability"
	"github.com/jonathan/resume-pipeline/internal/selection"
	"github.com/jonathan/resume-pipeline/internal/sheets"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// analysisTable is the sheet holding the serialized job-description analysis
// so that tailoring and assembly can run in later invocations without
// re-calling the model.
const analysisTable = "Job Analysis"

var analysisHeader = []string{"Analysis JSON"}

// ProgressEvent reports per-item progress during a stage so the CLI can show
// a live count without the pipeline knowing about terminals.
type ProgressEvent struct {
	Stage   string
	Index   int
	Total   int
	Message string
}

// ProgressCallback receives progress events. It must not block.
type ProgressCallback func(ProgressEvent)

// Pipeline wires the stages to their shared dependencies.
type Pipeline struct {
	cfg      *config.Config
	tab      sheets.Store
	client   llm.Client
	models   *llm.Config
	state    *StateStore
	store    *selection.Store
	database *db.DB
	printer  *observability.Printer
	progress ProgressCallback

	// sleep is swapped out in tests so inter-call pacing doesn't slow them.
	sleep func(time.Duration)
}

// New creates a Pipeline over the given tabular store and completion client.
func New(cfg *config.Config, tab sheets.Store, client llm.Client, models *llm.Config) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		tab:    tab,
		client: client,
		models: models,
		state:  NewStateStore(tab, cfg.StateSheet),
		store:  selection.NewStore(tab, cfg.SelectionSheet),
		sleep:  time.Sleep,
	}
}

// SetProgressCallback installs a progress listener.
func (p *Pipeline) SetProgressCallback(cb ProgressCallback) {
	p.progress = cb
}

// SetPrinter installs the console reporter used for stage summaries.
func (p *Pipeline) SetPrinter(printer *observability.Printer) {
	p.printer = printer
}

// SetDatabase attaches optional run persistence. A nil database is fine; the
// pipeline's durable state lives in the workbook either way.
func (p *Pipeline) SetDatabase(database *db.DB) {
	p.database = database
}

// Status returns the durable stage state, or nil when no stage has run yet.
func (p *Pipeline) Status() (*types.StageState, error) {
	return p.state.Load()
}

func (p *Pipeline) emit(stage string, index, total int, message string) {
	if p.progress != nil {
		p.progress(ProgressEvent{Stage: stage, Index: index, Total: total, Message: message})
	}
}

// pace sleeps the configured inter-call delay between consecutive model calls.
func (p *Pipeline) pace() {
	if p.cfg.InterCallDelayMS > 0 {
		p.sleep(time.Duration(p.cfg.InterCallDelayMS) * time.Millisecond)
	}
}

// loadMaster reads and normalizes the master resume sheet.
func (p *Pipeline) loadMaster() (*types.ResumeRecord, error) {
	rows, err := p.tab.ReadAllRows(p.cfg.MasterSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read master sheet %q: %w", p.cfg.MasterSheet, err)
	}
	record, err := normalize.New(p.cfg.MaxBulletColumns).Normalize(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize master resume: %w", err)
	}
	return record, nil
}

// saveAnalysis persists the job analysis to its own sheet.
func (p *Pipeline) saveAnalysis(analysis *types.JobDescriptionAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize job analysis: %w", err)
	}
	if err := p.tab.CreateOrReplaceTable(analysisTable, analysisHeader); err != nil {
		return fmt.Errorf("failed to recreate analysis sheet: %w", err)
	}
	if err := p.tab.WriteRows(analysisTable, [][]string{{string(data)}}, 2); err != nil {
		return fmt.Errorf("failed to write job analysis: %w", err)
	}
	return nil
}

// loadAnalysis reads the persisted job analysis back.
func (p *Pipeline) loadAnalysis() (*types.JobDescriptionAnalysis, error) {
	rows, err := p.tab.ReadAllRows(analysisTable)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis sheet: %w", err)
	}
	if len(rows) < 2 || len(rows[1]) == 0 || rows[1][0] == "" {
		return nil, fmt.Errorf("no job analysis found; run the analyze stage first")
	}
	analysis := &types.JobDescriptionAnalysis{}
	if err := json.Unmarshal([]byte(rows[1][0]), analysis); err != nil {
		return nil, fmt.Errorf("failed to parse persisted job analysis: %w", err)
	}
	analysis.EnsureDefaults()
	return analysis, nil
}

// recordRunState mirrors the stage state into the database when one is
// attached. Database failures never fail a stage.
func (p *Pipeline) recordRunState(ctx context.Context, state *types.StageState) {
	if p.database == nil || state == nil {
		return
	}
	runID, err := uuid.Parse(state.RunID)
	if err != nil {
		log.Printf("Warning: run ID %q is not persistable, continuing without database persistence", state.RunID)
		return
	}
	if err := p.database.RecordStageState(ctx, runID, *state); err != nil {
		log.Printf("Warning: failed to record stage state: %v, continuing without database persistence", err)
	}
}

// completeRun closes out the database run record at the end of assembly.
func (p *Pipeline) completeRun(ctx context.Context, state *types.StageState) {
	if p.database == nil || state == nil {
		return
	}
	runID, err := uuid.Parse(state.RunID)
	if err != nil {
		return
	}
	if err := p.database.CompleteRun(ctx, runID, "completed"); err != nil {
		log.Printf("Warning: failed to complete run record: %v", err)
	}
}
