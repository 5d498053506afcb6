package rendering

import (
	"fmt"
	"os"
	"strings"

	docx "github.com/lukasjarosch/go-docx"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// RenderDocx maps the record onto a .docx template via placeholder
// replacement. The template uses {FULL_NAME}-style placeholders (go-docx's
// default delimiters). Item stacks are flattened into newline-separated text
// with a bullet glyph per bullet line; character styling comes from the
// template's own paragraph styles.
func RenderDocx(record *types.FinalResumeRecord, templatePath, outputPath string) error {
	doc, err := docx.Open(templatePath)
	if err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to open template %s", templatePath), Cause: err}
	}

	if err := doc.ReplaceAll(docxReplacements(record)); err != nil {
		return &RenderError{Message: "placeholder replacement failed", Cause: err}
	}

	if err := doc.WriteToFile(outputPath); err != nil {
		// Remove any partially created artifact before reporting.
		_ = os.Remove(outputPath)
		return &RenderError{Message: fmt.Sprintf("failed to write output %s", outputPath), Cause: err}
	}
	return nil
}

// docxReplacements builds the placeholder map, keyed without delimiters.
func docxReplacements(record *types.FinalResumeRecord) docx.PlaceholderMap {
	info := record.PersonalInfo

	links := contactLinks(info)
	linkParts := make([]string, len(links))
	for i, l := range links {
		linkParts[i] = l.url
	}

	replacements := docx.PlaceholderMap{
		"FULL_NAME":     info["fullName"],
		"CONTACT_LINE":  contactLine(info),
		"CONTACT_LINKS": strings.Join(linkParts, contactSeparator),
		"SUMMARY":       record.Summary,
	}

	for token, title := range sectionPlaceholders {
		key := strings.Trim(token, "{}")
		replacements[key] = flattenLines(sectionLines(record.FindSection(title)))
	}
	return replacements
}

// flattenLines renders an item-line stack as plain text paragraphs.
func flattenLines(lines []line) string {
	var out []string
	for _, l := range lines {
		text := l.text
		if l.bullet {
			text = "• " + text
		}
		if strings.TrimSpace(text) == "" {
			// Empty paragraphs are dropped to avoid scaffolding gaps.
			continue
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n")
}
