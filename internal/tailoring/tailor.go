// Package tailoring rewrites individual resume bullets towards a target role
// using the text-completion capability.
package tailoring

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/resume-pipeline/internal/llm"
	"github.com/jonathan/resume-pipeline/internal/prompts"
	"github.com/jonathan/resume-pipeline/internal/types"
)

// TailorResult is the outcome of tailoring one bullet: either a rewrite or the
// model's verdict that the bullet is not suitable for tailoring.
type TailorResult struct {
	Text        string
	NotSuitable bool
}

// Tailor rewrites bullets against a job analysis.
type Tailor struct {
	client llm.Client
	models *llm.Config
}

// New creates a Tailor on top of a completion client.
func New(client llm.Client, models *llm.Config) *Tailor {
	if models == nil {
		models = llm.DefaultConfig()
	}
	return &Tailor{client: client, models: models}
}

// TailorBullet rewrites one bullet towards the target role.
func (t *Tailor) TailorBullet(ctx context.Context, originalText string, jd *types.JobDescriptionAnalysis, targetRole string) (TailorResult, error) {
	if strings.TrimSpace(originalText) == "" {
		return TailorResult{}, &TailoringError{Reason: "original text is empty"}
	}

	jdJSON, err := json.Marshal(jd)
	if err != nil {
		return TailorResult{}, &TailoringError{Reason: "failed to encode job analysis", Cause: err}
	}

	template := prompts.MustGet("tailoring.json", "tailor-bullet")
	prompt := prompts.Format(template, map[string]string{
		"TargetRole":   targetRole,
		"JobAnalysis":  string(jdJSON),
		"OriginalText": originalText,
	})

	responseText, err := t.client.Complete(ctx, llm.Request{
		Prompt:      prompt,
		Model:       t.models.GetModel(llm.TierLite),
		Temperature: 0.3,
	})
	if err != nil {
		return TailorResult{}, err
	}

	return parseTailorResponse(responseText)
}

// parseTailorResponse implements the dual-mode response contract: strip code
// fences, attempt the JSON envelope {"rewritten_bullet": "..."} first, then
// fall back to treating the full trimmed response as the literal answer. The
// not-suitable sentinel is honored in both modes and requires an exact match.
func parseTailorResponse(responseText string) (TailorResult, error) {
	cleaned := llm.CleanJSONBlock(responseText)

	answer := cleaned
	if gjson.Valid(cleaned) {
		if field := gjson.Get(cleaned, "rewritten_bullet"); field.Exists() {
			answer = field.String()
		}
	}

	answer = strings.TrimSpace(answer)
	if answer == types.NotSuitableSentinel {
		return TailorResult{NotSuitable: true}, nil
	}
	if answer == "" {
		return TailorResult{}, &TailoringError{
			Reason:    "response contained no rewritten text",
			RawOutput: responseText,
		}
	}

	return TailorResult{Text: answer}, nil
}
