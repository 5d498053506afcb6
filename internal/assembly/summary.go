package assembly

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// LLMSummaryGenerator builds a SummaryGenerator backed by the completion client.
func LLMSummaryGenerator(client llm.Client, models *llm.Config) SummaryGenerator {
	if models == nil {
		models = llm.DefaultConfig()
	}
	return func(ctx context.Context, highlights string, jd *types.JobDescriptionAnalysis, candidateName string) (string, error) {
		jdJSON, err := json.Marshal(jd)
		if err != nil {
			return "", fmt.Errorf("failed to encode job analysis: %w", err)
		}

		template := prompts.MustGet("summary.json", "generate-summary")
		prompt := prompts.Format(template, map[string]string{
			"CandidateName": candidateName,
			"JobAnalysis":   string(jdJSON),
			"Highlights":    highlights,
		})

		return client.Complete(ctx, llm.Request{
			Prompt:      prompt,
			Model:       models.GetModel(llm.TierAdvanced),
			Temperature: 0.4,
		})
	}
}
