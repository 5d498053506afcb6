package normalize

import (
	"strings"

	"github.com/jonathan/resume-pipeline/internal/types"
)

// buildJob materializes one EXPERIENCE row.
func buildJob(f itemFields) types.Item {
	job := &types.Job{
		Company:          f.get("company"),
		JobTitle:         f.get("jobTitle"),
		Location:         f.get("location"),
		StartDate:        formatDate(f.get("startDate")),
		EndDate:          formatEndDate(f.get("endDate")),
		Responsibilities: f.bullets,
		Extra:            f.extra,
	}
	if job.JobTitle == "" {
		job.JobTitle = f.get("title")
	}
	if job.Company == "" && job.JobTitle == "" && len(job.Responsibilities) == 0 {
		return nil
	}
	return job
}

// buildEducation materializes one EDUCATION row.
func buildEducation(f itemFields) types.Item {
	entry := &types.EducationEntry{
		Institution: f.get("institution"),
		Degree:      f.get("degree"),
		Location:    f.get("location"),
		StartDate:   formatDate(f.get("startDate")),
		EndDate:     formatEndDate(f.get("endDate")),
		GPA:         f.get("gpa"),
		Coursework:  splitMultiline(f.get("coursework")),
		Extra:       f.extra,
	}
	if entry.Institution == "" && entry.Degree == "" {
		return nil
	}
	return entry
}

// buildLeadership materializes one LEADERSHIP & UNIVERSITY INVOLVEMENT row.
func buildLeadership(f itemFields) types.Item {
	entry := &types.LeadershipEntry{
		Organization:     f.get("organization"),
		Role:             f.get("role"),
		Location:         f.get("location"),
		StartDate:        formatDate(f.get("startDate")),
		EndDate:          formatEndDate(f.get("endDate")),
		Responsibilities: f.bullets,
		Extra:            f.extra,
	}
	if entry.Organization == "" && entry.Role == "" {
		return nil
	}
	return entry
}

// buildAward materializes one HONORS & AWARDS row.
func buildAward(f itemFields) types.Item {
	award := &types.Award{
		Title:       f.get("title"),
		Issuer:      f.get("issuer"),
		Date:        formatDate(f.get("date")),
		Description: f.get("description"),
		Extra:       f.extra,
	}
	if award.Title == "" {
		return nil
	}
	return award
}

// buildProjectsSection places all project rows into a single default
// subsection; the source model does not group projects beyond one flat group.
func buildProjectsSection(items []itemFields) types.Section {
	sub := types.Subsection{Name: "General Projects"}
	for _, f := range items {
		project := &types.Project{
			Name:               f.get("name"),
			Technologies:       splitMultiline(f.get("technologies")),
			StartDate:          formatDate(f.get("startDate")),
			EndDate:            formatEndDate(f.get("endDate")),
			Link:               f.get("link"),
			DescriptionBullets: f.bullets,
			Extra:              f.extra,
		}
		if project.Name == "" && len(project.DescriptionBullets) == 0 {
			continue
		}
		sub.Items = append(sub.Items, project)
	}

	section := types.Section{Title: types.SectionProjects}
	if len(sub.Items) > 0 {
		section.Subsections = []types.Subsection{sub}
	}
	return section
}

// buildSkillsSection splits rows into skill items and certificate items by
// presence of issuer/issueDate fields, then groups them by category name in
// insertion order of first occurrence.
func buildSkillsSection(items []itemFields) types.Section {
	section := types.Section{Title: types.SectionSkills}
	subIndex := map[string]int{}

	for _, f := range items {
		item := buildSkillOrCert(f)
		if item == nil {
			continue
		}

		category := item.Category
		if category == "" {
			category = "General"
			item.Category = category
		}

		idx, ok := subIndex[category]
		if !ok {
			section.Subsections = append(section.Subsections, types.Subsection{Name: category})
			idx = len(section.Subsections) - 1
			subIndex[category] = idx
		}
		section.Subsections[idx].Items = append(section.Subsections[idx].Items, item)
	}

	return section
}

// buildSkillOrCert materializes one TECHNICAL SKILLS & CERTIFICATES row.
func buildSkillOrCert(f itemFields) *types.SkillOrCert {
	issuer := f.get("issuer")
	issueDate := f.get("issueDate")

	if issuer != "" || issueDate != "" {
		name := f.get("name")
		if name == "" {
			name = f.get("skill")
		}
		if name == "" {
			return nil
		}
		return &types.SkillOrCert{
			Category:    f.get("category"),
			Name:        name,
			Issuer:      issuer,
			IssueDate:   formatDate(issueDate),
			Certificate: true,
			Extra:       f.extra,
		}
	}

	skill := f.get("skill")
	if skill == "" {
		skill = f.get("name")
	}
	if skill == "" {
		return nil
	}
	return &types.SkillOrCert{
		Category: f.get("category"),
		Skill:    skill,
		Details:  f.get("details"),
		Extra:    f.extra,
	}
}

// personalInfoSynonyms maps normalized personal-info keys to canonical ones.
var personalInfoSynonyms = map[string]string{
	"name":         "fullName",
	"fullname":     "fullName",
	"email":        "email",
	"emailaddress": "email",
	"phone":        "phone",
	"phonenumber":  "phone",
	"mobile":       "phone",
	"location":     "location",
	"address":      "location",
	"linkedin":     "linkedin",
	"linkedinurl":  "linkedin",
	"github":       "github",
	"githuburl":    "github",
	"portfolio":    "portfolio",
	"website":      "portfolio",
}

// materializePersonalInfo reads key/value pairs from columns A/B. Unrecognized
// keys fall back to a camelCase conversion of the raw key and are preserved verbatim.
func materializePersonalInfo(rows [][]string) map[string]string {
	info := map[string]string{}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		rawKey := strings.TrimSpace(row[0])
		if rawKey == "" {
			continue
		}
		value := ""
		if len(row) > 1 {
			value = strings.TrimSpace(row[1])
		}

		key, ok := personalInfoSynonyms[normalizeKey(rawKey)]
		if !ok {
			key = camelCase(rawKey)
		}
		if key != "" {
			info[key] = value
		}
	}
	return info
}

// materializeSummary concatenates the body rows' text with newline separators.
// Column B is preferred unless it looks like a parenthesized template
// instruction, in which case column A is used.
func materializeSummary(rows [][]string) string {
	var lines []string
	for _, row := range rows {
		text := ""
		if len(row) > 1 {
			text = strings.TrimSpace(row[1])
		}
		if text == "" || looksLikeInstruction(text) {
			if len(row) > 0 {
				text = strings.TrimSpace(row[0])
			}
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// looksLikeInstruction reports whether a cell is a parenthesized template note
// rather than summary content.
func looksLikeInstruction(text string) bool {
	return strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")")
}
