package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/assembly"
	"github.com/jonathan/resume-pipeline/internal/rendering"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// RunAssembly executes stage 3: re-normalize the master resume, join the
// reviewed selection rows back onto it, filter, cap and reorder, regenerate
// the summary and render the final document from the template. The renderer
// backend is chosen by the template's extension.
func (p *Pipeline) RunAssembly(ctx context.Context, templatePath, outputPath string) types.StageResult {
	state, err := p.state.Load()
	if err != nil {
		return types.FailResult("assembly failed: %v", err)
	}
	current := types.StageStatus("")
	if state != nil {
		current = state.Status
	}
	if !current.CanTransition(types.StatusAssembled) {
		return types.FailResult("assembly requires a completed tailoring run; current state is %q", current)
	}

	master, err := p.loadMaster()
	if err != nil {
		return types.FailResult("assembly failed: %v", err)
	}
	jd, err := p.loadAnalysis()
	if err != nil {
		return types.FailResult("assembly failed: %v", err)
	}
	entries, err := p.store.AllEntries()
	if err != nil {
		return types.FailResult("failed to read selection sheet: %v", err)
	}

	assembler := assembly.New(assembly.Config{
		InclusionThreshold: p.cfg.InclusionThreshold,
		MaxBulletsPerItem:  p.cfg.MaxBulletsPerItem,
		MaxHighlights:      p.cfg.MaxHighlights,
	}, assembly.LLMSummaryGenerator(p.client, p.models))

	p.emit("assembly", 1, 2, "assembling final resume")
	final, err := assembler.Assemble(ctx, master, jd, entries)
	if err != nil {
		return types.FailResult("assembly failed: %v", err)
	}

	p.emit("assembly", 2, 2, "rendering "+outputPath)
	if err := renderDocument(final, templatePath, outputPath); err != nil {
		return types.FailResult("rendering failed: %v", err)
	}

	state, err = p.state.Transition(types.StatusAssembled)
	if err != nil {
		return types.FailResult("assembly failed: %v", err)
	}
	p.recordRunState(ctx, state)
	p.completeRun(ctx, state)

	result := types.OKResult("assembled resume written to %s", outputPath)
	result.Details = map[string]any{
		"run_id":   state.RunID,
		"output":   outputPath,
		"sections": len(final.Sections),
	}
	return result
}

// renderDocument dispatches on the template extension.
func renderDocument(record *types.FinalResumeRecord, templatePath, outputPath string) error {
	switch strings.ToLower(filepath.Ext(templatePath)) {
	case ".tex":
		return rendering.RenderLaTeX(record, templatePath, outputPath)
	case ".docx":
		return rendering.RenderDocx(record, templatePath, outputPath)
	default:
		return fmt.Errorf("unsupported template format %q: expected .tex or .docx", filepath.Ext(templatePath))
	}
}
