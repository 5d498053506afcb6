package types

// JobDescriptionAnalysis is the structured view of a job description extracted
// by the LLM. Every key is always present after EnsureDefaults: missing data is
// an empty string or empty slice, never absent.
type JobDescriptionAnalysis struct {
	JobTitle                string   `json:"jobTitle"`
	CompanyName             string   `json:"companyName"`
	Location                string   `json:"location"`
	KeyResponsibilities     []string `json:"keyResponsibilities"`
	RequiredTechnicalSkills []string `json:"requiredTechnicalSkills"`
	RequiredSoftSkills      []string `json:"requiredSoftSkills"`
	ExperienceLevel         string   `json:"experienceLevel"`
	EducationRequirements   string   `json:"educationRequirements"`
	PrimaryKeywords         []string `json:"primaryKeywords"`
	CompanyCultureClues     []string `json:"companyCultureClues"`
}

// EnsureDefaults replaces nil slices with empty ones so that downstream
// consumers and serialized output always see every key.
func (a *JobDescriptionAnalysis) EnsureDefaults() {
	if a.KeyResponsibilities == nil {
		a.KeyResponsibilities = []string{}
	}
	if a.RequiredTechnicalSkills == nil {
		a.RequiredTechnicalSkills = []string{}
	}
	if a.RequiredSoftSkills == nil {
		a.RequiredSoftSkills = []string{}
	}
	if a.PrimaryKeywords == nil {
		a.PrimaryKeywords = []string{}
	}
	if a.CompanyCultureClues == nil {
		a.CompanyCultureClues = []string{}
	}
}
