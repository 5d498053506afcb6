package pipeline

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/tailoring"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// RunTailoring executes stage 2: rewrite every user-selected row's text
// towards the analyzed role, writing results back into the selection sheet's
// tailored-text column. Rows the human did not select are skipped entirely.
// Per-item failures are written as error markers so the reviewer sees them
// in place; the batch never aborts on a model failure.
func (p *Pipeline) RunTailoring(ctx context.Context) types.StageResult {
	state, err := p.state.Load()
	if err != nil {
		return types.FailResult("tailoring failed: %v", err)
	}
	current := types.StageStatus("")
	if state != nil {
		current = state.Status
	}
	if !current.CanTransition(types.StatusTailored) {
		return types.FailResult("tailoring requires a reviewed scoring run; current state is %q", current)
	}

	jd, err := p.loadAnalysis()
	if err != nil {
		return types.FailResult("tailoring failed: %v", err)
	}

	entries, err := p.store.AllEntries()
	if err != nil {
		return types.FailResult("failed to read selection sheet: %v", err)
	}

	var selected []types.ScoredItemEntry
	for _, entry := range entries {
		if entry.UserSelected {
			selected = append(selected, entry)
		}
	}
	if len(selected) == 0 {
		return types.FailResult("no rows are marked selected in the %q sheet; nothing to tailor", p.cfg.SelectionSheet)
	}

	tailor := tailoring.New(p.client, p.models)
	tailored, notSuitable, failed := 0, 0, 0

	for i, entry := range selected {
		p.emit("tailoring", i+1, len(selected), entry.OriginalText)

		// Re-running the stage only fills rows that are still blank, so a
		// partially completed batch can resume without redoing work.
		if strings.TrimSpace(entry.TailoredText) != "" &&
			!strings.HasPrefix(strings.TrimSpace(entry.TailoredText), types.ErrorMarkerPrefix) {
			continue
		}

		var text string
		result, tailorErr := tailor.TailorBullet(ctx, entry.OriginalText, jd, jd.JobTitle)
		switch {
		case tailorErr != nil:
			log.Printf("Warning: tailoring failed for %q: %v", entry.OriginalText, tailorErr)
			text = types.ErrorMarkerPrefix + " " + tailorErr.Error()
			failed++
		case result.NotSuitable:
			text = types.NotSuitableSentinel
			notSuitable++
		default:
			text = result.Text
			tailored++
		}

		if _, err := p.store.MarkTailored(entry.UniqueID, text); err != nil {
			return types.FailResult("failed to write tailored text: %v", err)
		}
		if i < len(selected)-1 {
			p.pace()
		}
	}

	state, err = p.state.Transition(types.StatusTailored)
	if err != nil {
		return types.FailResult("tailoring failed: %v", err)
	}
	p.recordRunState(ctx, state)

	result := types.OKResult("tailored %d of %d selected items (%d not suitable, %d failed)", tailored, len(selected), notSuitable, failed)
	result.Details = map[string]any{
		"run_id":       state.RunID,
		"tailored":     tailored,
		"not_suitable": notSuitable,
		"failed":       failed,
	}
	return result
}
