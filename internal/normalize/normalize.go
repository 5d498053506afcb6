// Package normalize parses the semi-structured rows of the master resume
// table into the canonical ResumeRecord. The record is rebuilt fresh on every
// run and never mutated in place.
package normalize

import (
	"log"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// DefaultMaxBulletColumns is the number of numbered bullet columns
// (Responsibility1..N, DescriptionBullet1..N) recognized per item.
const DefaultMaxBulletColumns = 10

// Normalizer converts raw table rows into a ResumeRecord.
type Normalizer struct {
	maxBulletColumns int
}

// New creates a Normalizer. maxBulletColumns <= 0 selects the default.
func New(maxBulletColumns int) *Normalizer {
	if maxBulletColumns <= 0 {
		maxBulletColumns = DefaultMaxBulletColumns
	}
	return &Normalizer{maxBulletColumns: maxBulletColumns}
}

// sectionLookup maps lowercase match fragments to canonical section titles.
// A row starts a new section when its first cell matches one of these by
// case-insensitive prefix or substring.
var sectionLookup = []struct {
	fragment string
	title    types.SectionTitle
}{
	{"personal info", types.SectionPersonalInfo},
	{"summary", types.SectionSummary},
	{"education", types.SectionEducation},
	{"experience", types.SectionExperience},
	{"projects", types.SectionProjects},
	{"technical skills", types.SectionSkills},
	{"leadership", types.SectionLeadership},
	{"honors", types.SectionHonors},
}

// matchSectionTitle reports whether a first cell opens a new canonical section.
func matchSectionTitle(cell string) (types.SectionTitle, bool) {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	if normalized == "" {
		return "", false
	}
	for _, entry := range sectionLookup {
		if strings.HasPrefix(normalized, entry.fragment) || strings.Contains(normalized, entry.fragment) {
			return entry.title, true
		}
	}
	return "", false
}

// rawSection is a section's buffered body rows, materialized only once the
// next section boundary (or end of input) is reached so that closing
// aggregation logic sees the complete row set at once.
type rawSection struct {
	title types.SectionTitle
	rows  [][]string
}

// Normalize scans rows top to bottom, splits them into sections at canonical
// header rows and materializes each section into typed items.
func (n *Normalizer) Normalize(rows [][]string) (*types.ResumeRecord, error) {
	if len(rows) == 0 {
		return nil, &MalformedInputError{Message: "source table is empty"}
	}

	var sections []rawSection
	var current *rawSection

	for _, row := range rows {
		if blankRow(row) {
			continue
		}

		first := ""
		if len(row) > 0 {
			first = row[0]
		}

		if title, ok := matchSectionTitle(first); ok {
			sections = append(sections, rawSection{title: title})
			current = &sections[len(sections)-1]
			continue
		}

		if current == nil {
			// Data before any recognizable header is unattributable.
			continue
		}
		current.rows = append(current.rows, row)
	}

	if len(sections) == 0 {
		return nil, &MalformedInputError{Message: "no recognizable section header found"}
	}

	record := &types.ResumeRecord{PersonalInfo: map[string]string{}}
	seen := map[types.SectionTitle]bool{}

	for _, raw := range sections {
		if seen[raw.title] {
			log.Printf("normalize: duplicate section %q, keeping first occurrence", raw.title)
			continue
		}
		seen[raw.title] = true

		switch raw.title {
		case types.SectionPersonalInfo:
			record.PersonalInfo = materializePersonalInfo(raw.rows)
		case types.SectionSummary:
			record.Summary = materializeSummary(raw.rows)
		default:
			section, ok := n.materializeTabular(raw)
			if !ok {
				continue
			}
			record.Sections = append(record.Sections, section)
		}
	}

	return record, nil
}

// materializeTabular builds a typed section from buffered rows. The first
// buffered row is the header-name row; if no usable header exists while data
// rows accumulated, the section is logged and abandoned rather than failing
// the whole parse.
func (n *Normalizer) materializeTabular(raw rawSection) (types.Section, bool) {
	if len(raw.rows) == 0 {
		return types.Section{}, false
	}

	header := raw.rows[0]
	dataRows := raw.rows[1:]

	fields := canonicalHeader(header)
	if !headerUsable(fields) {
		if len(dataRows) > 1 {
			log.Printf("normalize: section %q has %d data rows but no recognizable header, dropping section", raw.title, len(dataRows))
		}
		return types.Section{}, false
	}

	var items []itemFields
	for _, row := range dataRows {
		items = append(items, zipRow(fields, row, n.maxBulletColumns))
	}
	if len(items) == 0 {
		return types.Section{}, false
	}

	switch raw.title {
	case types.SectionEducation:
		return buildFlatSection(raw.title, items, buildEducation), true
	case types.SectionExperience:
		return buildFlatSection(raw.title, items, buildJob), true
	case types.SectionLeadership:
		return buildFlatSection(raw.title, items, buildLeadership), true
	case types.SectionHonors:
		return buildFlatSection(raw.title, items, buildAward), true
	case types.SectionProjects:
		return buildProjectsSection(items), true
	case types.SectionSkills:
		return buildSkillsSection(items), true
	default:
		return types.Section{}, false
	}
}

// buildFlatSection materializes a flat section with one constructor per row.
func buildFlatSection(title types.SectionTitle, items []itemFields, build func(itemFields) types.Item) types.Section {
	section := types.Section{Title: title}
	for _, fields := range items {
		if item := build(fields); item != nil {
			section.Items = append(section.Items, item)
		}
	}
	return section
}

// blankRow reports whether every cell is empty or whitespace.
func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
