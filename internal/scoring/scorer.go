// Package scoring scores individual resume items against a job-description
// analysis using the text-completion capability.
package scoring

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// ScoreResult is the parsed outcome of scoring one item.
type ScoreResult struct {
	RelevanceScore   float64  `json:"relevanceScore"`
	MatchingKeywords []string `json:"matchingKeywords"`
	Justification    string   `json:"justification"`
}

// Scorer scores item texts against a job analysis.
type Scorer struct {
	client llm.Client
	models *llm.Config
}

// New creates a Scorer on top of a completion client.
func New(client llm.Client, models *llm.Config) *Scorer {
	if models == nil {
		models = llm.DefaultConfig()
	}
	return &Scorer{client: client, models: models}
}

// Score rates one item text for relevance. Empty input is a precondition
// violation, not a zero score: "nothing to score" and "scored as irrelevant"
// are different outcomes.
func (s *Scorer) Score(ctx context.Context, itemText string, jd *types.JobDescriptionAnalysis) (ScoreResult, error) {
	if strings.TrimSpace(itemText) == "" {
		return ScoreResult{}, &ScoringError{Reason: "item text is empty"}
	}

	jdJSON, err := json.Marshal(jd)
	if err != nil {
		return ScoreResult{}, &ScoringError{Reason: "failed to encode job analysis", Cause: err}
	}

	template := prompts.MustGet("scoring.json", "score-item")
	prompt := prompts.Format(template, map[string]string{
		"JobAnalysis": string(jdJSON),
		"ItemText":    itemText,
	})

	responseText, err := s.client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		Model:       s.models.GetModel(llm.TierLite),
		Temperature: 0.1,
	})
	if err != nil {
		return ScoreResult{}, err
	}

	return parseScoreResponse(responseText)
}

// parseScoreResponse enforces the expected-shape contract: relevanceScore
// numeric in [0,1], matchingKeywords a sequence, justification a string. Any
// other shape is a ScoringError, never a crash.
func parseScoreResponse(responseText string) (ScoreResult, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	var payload struct {
		RelevanceScore   *float64        `json:"relevanceScore"`
		MatchingKeywords json.RawMessage `json:"matchingKeywords"`
		Justification    *string         `json:"justification"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return ScoreResult{}, &ScoringError{
			Reason:    "response is not valid JSON",
			RawOutput: responseText,
			Cause:     err,
		}
	}

	if payload.RelevanceScore == nil {
		return ScoreResult{}, &ScoringError{Reason: "relevanceScore missing", RawOutput: responseText}
	}
	if *payload.RelevanceScore < 0 || *payload.RelevanceScore > 1 {
		return ScoreResult{}, &ScoringError{Reason: "relevanceScore out of [0,1]", RawOutput: responseText}
	}
	if payload.Justification == nil {
		return ScoreResult{}, &ScoringError{Reason: "justification missing", RawOutput: responseText}
	}
	if payload.MatchingKeywords == nil {
		return ScoreResult{}, &ScoringError{Reason: "matchingKeywords missing", RawOutput: responseText}
	}

	var keywords []string
	if err := json.Unmarshal(payload.MatchingKeywords, &keywords); err != nil {
		return ScoreResult{}, &ScoringError{
			Reason:    "matchingKeywords is not a sequence",
			RawOutput: responseText,
			Cause:     err,
		}
	}
	if keywords == nil {
		keywords = []string{}
	}

	return ScoreResult{
		RelevanceScore:   *payload.RelevanceScore,
		MatchingKeywords: keywords,
		Justification:    *payload.Justification,
	}, nil
}
