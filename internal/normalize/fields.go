package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// columnKind classifies a header cell.
type columnKind int

const (
	columnBlank columnKind = iota
	columnField
	columnBullet
	columnExtra
)

// columnSpec is the resolved meaning of one header cell.
type columnSpec struct {
	kind      columnKind
	name      string // canonical field name, or camelCased raw key for extras
	bulletIdx int    // 1-based index for numbered bullet columns
}

// itemFields is one data row zipped against the header: canonical fields,
// ordered bullet texts and the extension map of unrecognized columns.
type itemFields struct {
	values  map[string]string
	bullets []string
	extra   map[string]string
}

func (f itemFields) get(name string) string {
	return strings.TrimSpace(f.values[name])
}

// fieldSynonyms maps normalized header names (lowercased, whitespace and
// underscores stripped) to canonical field names.
var fieldSynonyms = map[string]string{
	"company":  "company",
	"employer": "company",

	"jobtitle": "jobTitle",
	"position": "jobTitle",

	"location": "location",
	"city":     "location",

	"startdate": "startDate",
	"start":     "startDate",
	"from":      "startDate",

	"enddate": "endDate",
	"end":     "endDate",
	"to":      "endDate",

	"institution": "institution",
	"school":      "institution",
	"university":  "institution",
	"college":     "institution",

	"degree":             "degree",
	"gpa":                "gpa",
	"coursework":         "coursework",
	"relevantcoursework": "coursework",
	"courses":            "coursework",

	"projectname": "name",
	"name":        "name",

	"technologies": "technologies",
	"techstack":    "technologies",
	"tools":        "technologies",

	"link": "link",
	"url":  "link",

	"category": "category",
	"group":    "category",

	"skill":   "skill",
	"details": "details",

	"certificatename": "name",
	"certificate":     "name",

	"issuer":              "issuer",
	"issuingorganization": "issuer",
	"issuedate":           "issueDate",
	"dateissued":          "issueDate",

	"organization": "organization",
	"org":          "organization",
	"role":         "role",

	"title":       "title",
	"award":       "title",
	"awardtitle":  "title",
	"description": "description",
	"date":        "date",
}

var bulletColumnPattern = regexp.MustCompile(`(?i)^(responsibility|descriptionbullet)\s*(\d+)$`)

// canonicalHeader resolves every header cell into a columnSpec.
func canonicalHeader(header []string) []columnSpec {
	specs := make([]columnSpec, len(header))
	for i, cell := range header {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" {
			specs[i] = columnSpec{kind: columnBlank}
			continue
		}

		normalized := normalizeKey(trimmed)
		if m := bulletColumnPattern.FindStringSubmatch(normalized); m != nil {
			idx, _ := strconv.Atoi(m[2])
			specs[i] = columnSpec{kind: columnBullet, bulletIdx: idx}
			continue
		}

		if canonical, ok := fieldSynonyms[normalized]; ok {
			specs[i] = columnSpec{kind: columnField, name: canonical}
			continue
		}

		specs[i] = columnSpec{kind: columnExtra, name: camelCase(trimmed)}
	}
	return specs
}

// headerUsable reports whether at least one field or bullet column was recognized.
func headerUsable(specs []columnSpec) bool {
	for _, s := range specs {
		if s.kind == columnField || s.kind == columnBullet {
			return true
		}
	}
	return false
}

// zipRow pairs a data row against the header positionally. Numbered bullet
// columns up to maxBullets are collected in column order skipping blanks and
// never appear as standalone fields.
func zipRow(specs []columnSpec, row []string, maxBullets int) itemFields {
	fields := itemFields{values: map[string]string{}}

	for i, spec := range specs {
		var cell string
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}

		switch spec.kind {
		case columnBullet:
			if spec.bulletIdx >= 1 && spec.bulletIdx <= maxBullets && cell != "" {
				fields.bullets = append(fields.bullets, cell)
			}
		case columnField:
			if cell != "" {
				fields.values[spec.name] = cell
			}
		case columnExtra:
			if cell != "" {
				if fields.extra == nil {
					fields.extra = map[string]string{}
				}
				fields.extra[spec.name] = cell
			}
		case columnBlank:
		}
	}

	return fields
}

// normalizeKey lowercases and strips whitespace and underscores for synonym lookup.
func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// camelCase converts an arbitrary raw key into a camelCase field name.
func camelCase(raw string) string {
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(strings.ToLower(word[1:]))
	}
	return b.String()
}

var (
	bareYearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthYearPattern = regexp.MustCompile(`^[A-Za-z]+ \d{4}$`)
)

// dateLayouts are tried in order when formatting a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01",
	"01/2006",
	"1/2006",
}

// formatDate renders a parseable calendar date as "Month YYYY". A bare 4-digit
// year or an already "Month YYYY"-shaped string passes through unchanged, as
// does anything unparseable. Never fails.
func formatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if bareYearPattern.MatchString(trimmed) || monthYearPattern.MatchString(trimmed) {
		return trimmed
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("January 2006")
		}
	}
	return trimmed
}

// formatEndDate formats an end-date cell, defaulting blanks to "Present".
func formatEndDate(raw string) string {
	formatted := formatDate(raw)
	if formatted == "" {
		return "Present"
	}
	return formatted
}

// splitMultiline splits a cell's content into trimmed, non-empty lines after
// normalizing literal backslash-n sequences to real newlines.
func splitMultiline(cell string) []string {
	normalized := strings.ReplaceAll(cell, `\n`, "\n")
	var out []string
	for _, line := range strings.Split(normalized, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
