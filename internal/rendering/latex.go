package rendering

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// RenderLaTeX substitutes every placeholder token in the LaTeX template with
// the record's content and writes the result to outputPath. Placeholders for
// sections without data are erased rather than left as literal text, and
// template lines left empty by erasure are removed in a cleanup pass.
func RenderLaTeX(record *types.FinalResumeRecord, templatePath, outputPath string) error {
	templateBytes, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &RenderError{Message: fmt.Sprintf("template file not found: %s", templatePath), Cause: err}
		}
		return &RenderError{Message: fmt.Sprintf("failed to read template %s", templatePath), Cause: err}
	}

	replacements := latexReplacements(record)

	// Empty replacements substitute to a marker so the cleanup pass can tell
	// an erased placeholder's line apart from a deliberate template blank.
	output := string(templateBytes)
	for token, value := range replacements {
		if strings.TrimSpace(value) == "" {
			value = erasedMark
		}
		output = strings.ReplaceAll(output, token, value)
	}
	output = dropErasedLines(output)

	if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
		// Remove any partially created artifact before reporting.
		_ = os.Remove(outputPath)
		return &RenderError{Message: fmt.Sprintf("failed to write output %s", outputPath), Cause: err}
	}
	return nil
}

// latexReplacements builds the exact-text substitution map.
func latexReplacements(record *types.FinalResumeRecord) map[string]string {
	info := record.PersonalInfo

	replacements := map[string]string{
		PlaceholderFullName:     EscapeLaTeX(info["fullName"]),
		PlaceholderContactLine:  EscapeLaTeX(contactLine(info)),
		PlaceholderContactLinks: latexLinks(contactLinks(info)),
		PlaceholderSummary:      EscapeLaTeX(record.Summary),
	}

	for token, title := range sectionPlaceholders {
		replacements[token] = latexLines(sectionLines(record.FindSection(title)))
	}
	return replacements
}

// latexLinks renders the composite contact-links placeholder: styled hyperlink
// runs joined by the fixed separator, only for links present.
func latexLinks(links []link) string {
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = fmt.Sprintf(`\href{%s}{\underline{%s}}`, l.url, EscapeLaTeX(l.label))
	}
	return strings.Join(parts, ` $|$ `)
}

// latexLines renders an item-line stack as LaTeX paragraphs.
func latexLines(lines []line) string {
	var b strings.Builder
	for i, l := range lines {
		if l.spaceBefore > 0 && i > 0 {
			fmt.Fprintf(&b, "\\vspace{%dpt}\n", l.spaceBefore)
		}

		text := EscapeLaTeX(l.text)
		switch {
		case l.bold:
			text = fmt.Sprintf(`\textbf{%s}`, text)
		case l.italic:
			text = fmt.Sprintf(`\textit{%s}`, text)
		case l.bullet:
			text = fmt.Sprintf(`\hspace{1em}$\bullet$ %s`, text)
		}

		b.WriteString(`\noindent `)
		b.WriteString(text)
		b.WriteString("\\\\\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// erasedMark stands in for a placeholder that substituted to nothing. The NUL
// byte cannot appear in template or resume text.
const erasedMark = "\x00"

// dropErasedLines strips the erasure markers and removes every line the
// erasure left empty, eliminating scaffolding gaps. Lines with surviving
// content around a marker are kept, as are the template's own blank lines.
func dropErasedLines(output string) string {
	if !strings.Contains(output, erasedMark) {
		return output
	}

	lines := strings.Split(output, "\n")
	var kept []string
	for _, l := range lines {
		stripped := strings.ReplaceAll(l, erasedMark, "")
		if stripped != l && strings.TrimSpace(stripped) == "" {
			continue
		}
		kept = append(kept, stripped)
	}
	return strings.Join(kept, "\n")
}
