package types

import "strings"

// NotSuitableSentinel is the exact response the tailoring model returns when a
// bullet cannot be meaningfully rewritten for the target role. The assembler
// falls back to the original text when it sees this value.
const NotSuitableSentinel = "Original bullet not suitable for significant tailoring towards this role."

// ErrorMarkerPrefix prefixes justification or tailored-text values recorded for
// rows whose LLM call failed, so a failed item stays visible in the selection
// sheet instead of aborting the batch.
const ErrorMarkerPrefix = "ERROR:"

// ScoredItemEntry is one row of the selection store: a single scorable unit
// (one bullet, or one skill/cert) with its score, the human selection flag and
// the optional tailored rewrite.
type ScoredItemEntry struct {
	UniqueID         string       `json:"unique_id"`
	SectionTitle     SectionTitle `json:"section_title"`
	ItemIdentifier   string       `json:"item_identifier"`
	OriginalText     string       `json:"original_text"`
	RelevanceScore   float64      `json:"relevance_score"`
	MatchingKeywords []string     `json:"matching_keywords"`
	Justification    string       `json:"justification"`
	UserSelected     bool         `json:"user_selected"`
	TailoredText     string       `json:"tailored_text,omitempty"`
}

// HasUsableTailoredText reports whether TailoredText should replace
// OriginalText during assembly: present, not the not-suitable sentinel and not
// an error marker.
func (e *ScoredItemEntry) HasUsableTailoredText() bool {
	t := strings.TrimSpace(e.TailoredText)
	if t == "" || t == NotSuitableSentinel {
		return false
	}
	return !strings.HasPrefix(t, ErrorMarkerPrefix)
}

// FinalText resolves the text that should appear on the assembled resume.
func (e *ScoredItemEntry) FinalText() string {
	if e.HasUsableTailoredText() {
		return strings.TrimSpace(e.TailoredText)
	}
	return e.OriginalText
}

// selectedSpellings are the only accepted truthy values for the user-selection
// flag; anything else, including blank, means not selected.
var selectedSpellings = map[string]bool{
	"YES":  true,
	"TRUE": true,
	"1":    true,
	"X":    true,
}

// ParseSelectionFlag interprets the human-entered selection cell.
func ParseSelectionFlag(raw string) bool {
	return selectedSpellings[strings.ToUpper(strings.TrimSpace(raw))]
}
