package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxReplacements(t *testing.T) {
	replacements := docxReplacements(finalRecord())

	assert.Equal(t, "Jane Doe", replacements["FULL_NAME"])
	assert.Equal(t, "jane@example.com | 555-0100", replacements["CONTACT_LINE"])
	assert.Equal(t, "https://linkedin.com/in/janedoe", replacements["CONTACT_LINKS"])
	// Plain text, no LaTeX escaping.
	assert.Equal(t, "Engineer with 10% more grit & determination.", replacements["SUMMARY"])

	experience, ok := replacements["EXPERIENCE"].(string)
	require.True(t, ok)
	assert.Contains(t, experience, "Engineer - Acme Corp")
	assert.Contains(t, experience, "• Cut costs by 30%")

	// Absent sections map to empty strings so their placeholders are erased.
	assert.Equal(t, "", replacements["PROJECTS"])
}

func TestFlattenLines(t *testing.T) {
	lines := []line{
		{text: "Engineer - Acme Corp", bold: true},
		{text: "Austin, TX", italic: true},
		{text: "Cut costs by 30%", bullet: true},
		{text: "   "},
	}
	flat := flattenLines(lines)
	assert.Equal(t, "Engineer - Acme Corp\nAustin, TX\n• Cut costs by 30%", flat)
}

func TestFlattenLines_Empty(t *testing.T) {
	assert.Equal(t, "", flattenLines(nil))
}
