// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Slice on runes so a multibyte character is never split.
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobAnalysis outputs a human-readable summary of the job-description analysis.
func (p *Printer) PrintJobAnalysis(analysis *types.JobDescriptionAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", analysis.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", analysis.JobTitle))
	if analysis.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", analysis.Location))
	}
	if analysis.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Level:    %s\n", analysis.ExperienceLevel))
	}

	appendList(&sb, "Technical Skills", analysis.RequiredTechnicalSkills)
	appendList(&sb, "Primary Keywords", analysis.PrimaryKeywords)

	p.printBox("Job Description Analysis", strings.TrimRight(sb.String(), "\n"))
}

// PrintScoringSummary outputs counts from a completed scoring run.
func (p *Printer) PrintScoringSummary(scored, failed int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Items scored:  %d\n", scored))
	sb.WriteString(fmt.Sprintf("Items failed:  %d", failed))
	p.printBox("Scoring Summary", sb.String())
}

func appendList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(label + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
