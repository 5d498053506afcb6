// Package analysis extracts a structured JobDescriptionAnalysis from free job
// description text using the text-completion capability.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/schemas"
	"github.com/jonathan/resume-pipeline/internal/types"
)

const analysisSchema = "job_description_analysis.schema.json"

// Analyzer turns job description text into a JobDescriptionAnalysis.
type Analyzer struct {
	client llm.Client
	models *llm.Config
}

// New creates an Analyzer on top of a completion client.
func New(client llm.Client, models *llm.Config) *Analyzer {
	if models == nil {
		models = llm.DefaultConfig()
	}
	return &Analyzer{client: client, models: models}
}

// Analyze extracts the fixed-key analysis record. Every key of the result is
// guaranteed present; missing data is an empty string or slice.
func (a *Analyzer) Analyze(ctx context.Context, jobDescription string) (*types.JobDescriptionAnalysis, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ParseError{Message: "job description text is empty"}
	}

	template := prompts.MustGet("analysis.json", "extract-job-analysis")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
	})

	responseText, err := a.client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		Model:       a.models.GetModel(llm.TierStandard),
		Temperature: 0.1,
	})
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateString(analysisSchema, cleaned); err != nil {
		return nil, &ParseError{
			Message:   "job analysis response failed schema validation",
			RawOutput: responseText,
			Cause:     err,
		}
	}

	var result types.JobDescriptionAnalysis
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ParseError{
			Message:   "failed to parse job analysis JSON",
			RawOutput: responseText,
			Cause:     err,
		}
	}

	result.EnsureDefaults()
	return &result, nil
}
