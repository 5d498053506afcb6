// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock strips a markdown code fence from a completion, if present.
// Models wrap JSON in ```json ... ``` fences even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := strings.TrimPrefix(text, "```")
	if rest, ok := strings.CutPrefix(body, "json"); ok {
		body = rest
	} else if nl := strings.Index(body, "\n"); nl >= 0 && looksLikeLanguageTag(body[:nl]) {
		body = body[nl+1:]
	}

	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// looksLikeLanguageTag reports whether a fence's first line is a bare language
// identifier rather than the start of the payload.
func looksLikeLanguageTag(s string) bool {
	return len(s) < 20 && !strings.ContainsAny(s, " {")
}
