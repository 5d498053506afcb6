package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-pipeline/internal/analysis"
	"github.com/jonathan/resume-pipeline/internal/scoring"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// RunScoring executes stage 1: normalize the master resume, analyze the job
// description, then score every scorable unit into a freshly rebuilt selection
// sheet. Per-item model failures are recorded as error-marked rows with score
// zero; only infrastructure failures abort the stage. Rows are written one at
// a time so an interrupted run keeps its partial progress.
func (p *Pipeline) RunScoring(ctx context.Context, jobDescription string) types.StageResult {
	master, err := p.loadMaster()
	if err != nil {
		return types.FailResult("scoring failed: %v", err)
	}

	analyzer := analysis.New(p.client, p.models)
	jd, err := analyzer.Analyze(ctx, jobDescription)
	if err != nil {
		return types.FailResult("job description analysis failed: %v", err)
	}
	if err := p.saveAnalysis(jd); err != nil {
		return types.FailResult("scoring failed: %v", err)
	}
	if p.printer != nil {
		p.printer.PrintJobAnalysis(jd)
	}

	state, err := p.state.Transition(types.StatusScored)
	if err != nil {
		return types.FailResult("scoring failed: %v", err)
	}
	p.createRun(ctx, state, jd)

	if err := p.store.Initialize(); err != nil {
		return types.FailResult("failed to initialize selection sheet: %v", err)
	}

	units := collectScorableUnits(master)
	scorer := scoring.New(p.client, p.models)
	scored, failed := 0, 0

	for i, unit := range units {
		p.emit("scoring", i+1, len(units), unit.text)

		entry := types.ScoredItemEntry{
			UniqueID:       unitID(i),
			SectionTitle:   unit.section,
			ItemIdentifier: unit.identifier,
			OriginalText:   unit.text,
		}

		result, scoreErr := scorer.Score(ctx, unit.text, jd)
		if scoreErr != nil {
			log.Printf("Warning: scoring failed for %q: %v", unit.text, scoreErr)
			entry.Justification = types.ErrorMarkerPrefix + " " + scoreErr.Error()
			failed++
		} else {
			entry.RelevanceScore = result.RelevanceScore
			entry.MatchingKeywords = result.MatchingKeywords
			entry.Justification = result.Justification
			scored++
		}

		if err := p.store.Record([]types.ScoredItemEntry{entry}); err != nil {
			return types.FailResult("failed to record scored entry: %v", err)
		}
		if i < len(units)-1 {
			p.pace()
		}
	}

	state, err = p.state.Transition(types.StatusAwaitingSelection)
	if err != nil {
		return types.FailResult("scoring failed: %v", err)
	}
	p.recordRunState(ctx, state)

	if p.printer != nil {
		p.printer.PrintScoringSummary(scored, failed)
	}

	result := types.OKResult("scored %d of %d items; review the %q sheet and mark selections", scored, len(units), p.cfg.SelectionSheet)
	result.Details = map[string]any{
		"run_id":   state.RunID,
		"scored":   scored,
		"failed":   failed,
		"role":     jd.JobTitle,
		"company":  jd.CompanyName,
		"sections": sectionNames(master),
	}
	return result
}

// createRun opens the database run record for a fresh scoring pass.
func (p *Pipeline) createRun(ctx context.Context, state *types.StageState, jd *types.JobDescriptionAnalysis) {
	if p.database == nil || state == nil {
		return
	}
	runID, err := uuid.Parse(state.RunID)
	if err != nil {
		log.Printf("Warning: run ID %q is not persistable, continuing without database persistence", state.RunID)
		return
	}
	if err := p.database.CreateRun(ctx, runID, jd.CompanyName, jd.JobTitle); err != nil {
		log.Printf("Warning: failed to create run record: %v, continuing without database persistence", err)
		return
	}
	p.recordRunState(ctx, state)
}

func sectionNames(record *types.ResumeRecord) string {
	names := make([]string, 0, len(record.Sections))
	for _, section := range record.Sections {
		names = append(names, string(section.Title))
	}
	return strings.Join(names, ", ")
}
