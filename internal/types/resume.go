// Package types provides type definitions for structured data used throughout the resume-pipeline system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SectionTitle is one of the canonical resume section names recognized by normalization.
type SectionTitle string

// Canonical section titles. PERSONAL INFO and SUMMARY are consumed into
// dedicated ResumeRecord fields and never appear in Sections.
const (
	SectionPersonalInfo SectionTitle = "PERSONAL INFO"
	SectionSummary      SectionTitle = "SUMMARY"
	SectionEducation    SectionTitle = "EDUCATION"
	SectionExperience   SectionTitle = "EXPERIENCE"
	SectionProjects     SectionTitle = "PROJECTS"
	SectionSkills       SectionTitle = "TECHNICAL SKILLS & CERTIFICATES"
	SectionLeadership   SectionTitle = "LEADERSHIP & UNIVERSITY INVOLVEMENT"
	SectionHonors       SectionTitle = "HONORS & AWARDS"
)

// FinalSectionOrder is the fixed emission order for assembled resumes.
var FinalSectionOrder = []SectionTitle{
	SectionEducation,
	SectionExperience,
	SectionProjects,
	SectionSkills,
	SectionLeadership,
	SectionHonors,
}

// ResumeRecord is the canonical resume produced by normalization.
// It is rebuilt fresh from the tabular store on every scoring run and never mutated in place.
type ResumeRecord struct {
	// PersonalInfo maps known keys (fullName, email, phone, location, linkedin,
	// github, portfolio) to values; unrecognized source keys are preserved
	// verbatim under a camelCased key.
	PersonalInfo map[string]string `json:"personal_info"`
	Summary      string            `json:"summary"`
	Sections     []Section         `json:"sections"`
}

// Section carries either Items (flat sections: EXPERIENCE, EDUCATION,
// LEADERSHIP, HONORS) or Subsections (grouped sections: PROJECTS,
// TECHNICAL SKILLS & CERTIFICATES), never both.
type Section struct {
	Title       SectionTitle `json:"title"`
	Items       []Item       `json:"items,omitempty"`
	Subsections []Subsection `json:"subsections,omitempty"`
}

// Grouped reports whether the section uses the subsection shape.
func (s *Section) Grouped() bool {
	return s.Title == SectionProjects || s.Title == SectionSkills
}

// Empty reports whether the section carries no items at all.
func (s *Section) Empty() bool {
	if len(s.Items) > 0 {
		return false
	}
	for _, sub := range s.Subsections {
		if len(sub.Items) > 0 {
			return false
		}
	}
	return true
}

// Subsection is a named group of items within a grouped section.
type Subsection struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is the interface satisfied by all section item variants.
// Identifier returns the natural key used to correlate scored rows back to
// their source item (company name, project name, organization, skill name).
// Bullets returns the item's scorable bullet texts, if any.
type Item interface {
	Identifier() string
	Bullets() []string
}

// Job is an EXPERIENCE item.
type Job struct {
	Company          string            `json:"company"`
	JobTitle         string            `json:"job_title"`
	Location         string            `json:"location"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	Responsibilities []string          `json:"responsibilities"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// Identifier returns the company name.
func (j *Job) Identifier() string { return j.Company }

// Bullets returns the job's responsibility texts.
func (j *Job) Bullets() []string { return j.Responsibilities }

// EducationEntry is an EDUCATION item.
type EducationEntry struct {
	Institution string            `json:"institution"`
	Degree      string            `json:"degree"`
	Location    string            `json:"location"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	GPA         string            `json:"gpa,omitempty"`
	Coursework  []string          `json:"coursework,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Identifier returns the institution name.
func (e *EducationEntry) Identifier() string { return e.Institution }

// Bullets returns nil; education entries carry no scorable bullets.
func (e *EducationEntry) Bullets() []string { return nil }

// Project is a PROJECTS item.
type Project struct {
	Name               string            `json:"name"`
	Technologies       []string          `json:"technologies,omitempty"`
	StartDate          string            `json:"start_date"`
	EndDate            string            `json:"end_date"`
	Link               string            `json:"link,omitempty"`
	DescriptionBullets []string          `json:"description_bullets"`
	Extra              map[string]string `json:"extra,omitempty"`
}

// Identifier returns the project name.
func (p *Project) Identifier() string { return p.Name }

// Bullets returns the project's description bullets.
func (p *Project) Bullets() []string { return p.DescriptionBullets }

// SkillOrCert is a TECHNICAL SKILLS & CERTIFICATES item. A row with an issuer
// or issue date is a certificate; otherwise it is a skill.
type SkillOrCert struct {
	Category    string            `json:"category"`
	Skill       string            `json:"skill,omitempty"`
	Details     string            `json:"details,omitempty"`
	Name        string            `json:"name,omitempty"`
	Issuer      string            `json:"issuer,omitempty"`
	IssueDate   string            `json:"issue_date,omitempty"`
	Certificate bool              `json:"certificate"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Identifier returns the skill name for skills and the certificate name for certificates.
func (s *SkillOrCert) Identifier() string {
	if s.Certificate {
		return s.Name
	}
	return s.Skill
}

// Bullets returns nil; the scorable unit for a skill or certificate is its identifier text.
func (s *SkillOrCert) Bullets() []string { return nil }

// ScorableText returns the text scored against the job description: the
// identifier plus any details, so the scorer sees the full context.
func (s *SkillOrCert) ScorableText() string {
	parts := []string{s.Identifier()}
	if s.Details != "" {
		parts = append(parts, s.Details)
	}
	if s.Certificate && s.Issuer != "" {
		parts = append(parts, s.Issuer)
	}
	return strings.Join(parts, " - ")
}

// LeadershipEntry is a LEADERSHIP & UNIVERSITY INVOLVEMENT item.
type LeadershipEntry struct {
	Organization     string            `json:"organization"`
	Role             string            `json:"role"`
	Location         string            `json:"location"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	Responsibilities []string          `json:"responsibilities"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// Identifier returns the organization, falling back to the role when the
// organization is absent.
func (l *LeadershipEntry) Identifier() string {
	if l.Organization != "" {
		return l.Organization
	}
	return l.Role
}

// Bullets returns the entry's responsibility texts.
func (l *LeadershipEntry) Bullets() []string { return l.Responsibilities }

// Award is an HONORS & AWARDS item.
type Award struct {
	Title       string            `json:"title"`
	Issuer      string            `json:"issuer,omitempty"`
	Date        string            `json:"date,omitempty"`
	Description string            `json:"description,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Identifier returns the award title.
func (a *Award) Identifier() string { return a.Title }

// Bullets returns the award description as a single bullet when present.
func (a *Award) Bullets() []string {
	if a.Description == "" {
		return nil
	}
	return []string{a.Description}
}

// FindSection returns the section with the given title, or nil.
func (r *ResumeRecord) FindSection(title SectionTitle) *Section {
	for i := range r.Sections {
		if r.Sections[i].Title == title {
			return &r.Sections[i]
		}
	}
	return nil
}

// FinalResumeRecord has the same shape as ResumeRecord but every included item
// carries only the bullets that survived filtering, and Summary is regenerated.
// It is constructed fresh by the assembler and consumed exactly once by the renderer.
type FinalResumeRecord ResumeRecord

// FindSection returns the section with the given title, or nil.
func (r *FinalResumeRecord) FindSection(title SectionTitle) *Section {
	return (*ResumeRecord)(r).FindSection(title)
}
