package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// Placeholder tokens substituted by exact-text replacement in templates.
const (
	PlaceholderFullName     = "{{FULL_NAME}}"
	PlaceholderContactLine  = "{{CONTACT_LINE}}"
	PlaceholderContactLinks = "{{CONTACT_LINKS}}"
	PlaceholderSummary      = "{{SUMMARY}}"
)

// sectionPlaceholders maps each block placeholder to its section.
var sectionPlaceholders = map[string]types.SectionTitle{
	"{{EDUCATION}}":        types.SectionEducation,
	"{{EXPERIENCE}}":       types.SectionExperience,
	"{{PROJECTS}}":         types.SectionProjects,
	"{{TECHNICAL_SKILLS}}": types.SectionSkills,
	"{{LEADERSHIP}}":       types.SectionLeadership,
	"{{HONORS}}":           types.SectionHonors,
}

// Fixed spacing deltas between rendered lines, in points. These are design
// decisions, not computed values: tight under a title line, a larger gap
// between successive item instances.
const (
	spacingAfterTitle   = 2
	spacingBetweenItems = 8
)

// contactSeparator joins contact fields and link runs.
const contactSeparator = " | "

// line is one rendered paragraph of an item stack.
type line struct {
	text        string
	bold        bool
	italic      bool
	bullet      bool
	spaceBefore int
}

// link is one styled hyperlink run of the composite contact-links placeholder.
type link struct {
	label string
	url   string
}

// contactLine joins email, phone and location, only for fields present.
func contactLine(info map[string]string) string {
	var parts []string
	for _, key := range []string{"email", "phone", "location"} {
		if v := strings.TrimSpace(info[key]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, contactSeparator)
}

// contactLinks returns the styled hyperlink runs, only for links present.
func contactLinks(info map[string]string) []link {
	var links []link
	for _, entry := range []struct{ key, label string }{
		{"linkedin", "LinkedIn"},
		{"github", "GitHub"},
		{"portfolio", "Portfolio"},
	} {
		if v := strings.TrimSpace(info[entry.key]); v != "" {
			links = append(links, link{label: entry.label, url: v})
		}
	}
	return links
}

// sectionLines renders a section's items sequentially into a fixed vertical
// stack of styled lines.
func sectionLines(section *types.Section) []line {
	if section == nil {
		return nil
	}

	var lines []line
	if len(section.Subsections) > 0 {
		for _, sub := range section.Subsections {
			if len(sub.Items) == 0 {
				continue
			}
			lines = append(lines, line{text: sub.Name, bold: true, spaceBefore: spacingBetweenItems})
			for _, item := range sub.Items {
				lines = append(lines, itemLines(item)...)
			}
		}
		return lines
	}

	for _, item := range section.Items {
		lines = append(lines, itemLines(item)...)
	}
	return lines
}

// itemLines emits the per-item stack: bold name/title line, italic date line,
// indented bullet lines.
func itemLines(item types.Item) []line {
	switch v := item.(type) {
	case *types.Job:
		return entryLines(joinNonEmpty(" - ", v.JobTitle, v.Company), dateLine(v.Location, v.StartDate, v.EndDate), v.Responsibilities)
	case *types.EducationEntry:
		lines := entryLines(v.Institution, dateLine(v.Location, v.StartDate, v.EndDate), nil)
		if detail := joinNonEmpty(", ", v.Degree, gpaText(v.GPA)); detail != "" {
			lines = append(lines, line{text: detail, spaceBefore: spacingAfterTitle})
		}
		if len(v.Coursework) > 0 {
			lines = append(lines, line{text: "Coursework: " + strings.Join(v.Coursework, ", "), spaceBefore: spacingAfterTitle})
		}
		return lines
	case *types.Project:
		title := v.Name
		if v.Link != "" {
			title = joinNonEmpty(" - ", title, v.Link)
		}
		lines := entryLines(title, dateLine(strings.Join(v.Technologies, ", "), v.StartDate, v.EndDate), v.DescriptionBullets)
		return lines
	case *types.LeadershipEntry:
		return entryLines(joinNonEmpty(" - ", v.Organization, v.Role), dateLine(v.Location, v.StartDate, v.EndDate), v.Responsibilities)
	case *types.Award:
		title := v.Title
		if meta := joinNonEmpty(", ", v.Issuer, v.Date); meta != "" {
			title = fmt.Sprintf("%s (%s)", title, meta)
		}
		var bullets []string
		if v.Description != "" {
			bullets = []string{v.Description}
		}
		return entryLines(title, "", bullets)
	case *types.SkillOrCert:
		return []line{{text: skillText(v), bullet: true, spaceBefore: spacingAfterTitle}}
	default:
		return nil
	}
}

// entryLines assembles the common title/date/bullets stack.
func entryLines(title, dates string, bullets []string) []line {
	var lines []line
	if title != "" {
		lines = append(lines, line{text: title, bold: true, spaceBefore: spacingBetweenItems})
	}
	if dates != "" {
		lines = append(lines, line{text: dates, italic: true, spaceBefore: spacingAfterTitle})
	}
	for _, b := range bullets {
		lines = append(lines, line{text: b, bullet: true, spaceBefore: spacingAfterTitle})
	}
	return lines
}

// skillText renders one skill or certificate as a single line.
func skillText(s *types.SkillOrCert) string {
	if s.Certificate {
		meta := joinNonEmpty(", ", s.Issuer, s.IssueDate)
		if meta != "" {
			return fmt.Sprintf("%s (%s)", s.Name, meta)
		}
		return s.Name
	}
	if s.Details != "" {
		return fmt.Sprintf("%s: %s", s.Skill, s.Details)
	}
	return s.Skill
}

func dateLine(location, start, end string) string {
	dates := joinNonEmpty(" - ", start, end)
	return joinNonEmpty(contactSeparator, location, dates)
}

func gpaText(gpa string) string {
	if gpa == "" {
		return ""
	}
	return "GPA: " + gpa
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}
