package observability

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-pipeline/internal/types"
)

func TestPrinter_PrintJobAnalysis(t *testing.T) {
	var out strings.Builder
	printer := NewPrinter(&out)

	printer.PrintJobAnalysis(&types.JobDescriptionAnalysis{
		JobTitle:                "Data Engineer",
		CompanyName:             "Initech",
		Location:                "Austin, TX",
		RequiredTechnicalSkills: []string{"Go", "SQL", "Airflow", "dbt", "Spark", "Kafka"},
	})

	text := out.String()
	assert.Contains(t, text, "Job Description Analysis")
	assert.Contains(t, text, "Initech")
	assert.Contains(t, text, "Data Engineer")
	assert.Contains(t, text, "Austin, TX")
	// Long lists are truncated with a count of the remainder.
	assert.Contains(t, text, "... and 1 more")
}

func TestPrinter_LongMultibyteLineTruncatedOnRunes(t *testing.T) {
	var out strings.Builder
	printer := NewPrinter(&out)

	// 70 two-byte runes; byte-index slicing would cut one in half.
	printer.PrintJobAnalysis(&types.JobDescriptionAnalysis{
		JobTitle:    strings.Repeat("é", 70),
		CompanyName: "Initech",
	})

	text := out.String()
	assert.True(t, utf8.ValidString(text))
	assert.Contains(t, text, "...")
	assert.NotContains(t, text, string(utf8.RuneError))
}

func TestPrinter_PrintJobAnalysis_Nil(t *testing.T) {
	var out strings.Builder
	NewPrinter(&out).PrintJobAnalysis(nil)
	assert.Empty(t, out.String())
}

func TestPrinter_PrintScoringSummary(t *testing.T) {
	var out strings.Builder
	NewPrinter(&out).PrintScoringSummary(12, 2)

	text := out.String()
	assert.Contains(t, text, "Items scored:  12")
	assert.Contains(t, text, "Items failed:  2")
}
