package generate

import (
	"fmt"
	"strings"
)

// TailoredResume is the structured resume produced by the tailoring pipeline.
// Every field must be traceable to the source resume text; the prompt forbids
// fabricating experience absent from the source.
type TailoredResume struct {
	Name           string          `json:"name"`
	ContactDetails string          `json:"contact_details"`
	Summary        string          `json:"summary"`
	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []string        `json:"certifications"`
}

// Experience is a single tailored work history entry.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// Education is a single education entry.
type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Dates      string `json:"dates"`
}

// Project is a single project entry.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MatchAnalysis captures how well the tailored resume matches the job
// description.
type MatchAnalysis struct {
	SuccessProbability     string   `json:"success_probability"`
	KeywordMatchPercentage string   `json:"keyword_match_percentage"`
	KeywordsFound          []string `json:"keywords_found"`
	Recommendations        string   `json:"recommendations"`
}

// TailoredResumeResult is the full structured output of the tailoring
// pipeline: the tailored resume plus the match analysis.
type TailoredResumeResult struct {
	Resume   TailoredResume `json:"resume"`
	Analysis MatchAnalysis  `json:"analysis"`
}

// Validate performs a shape check on a decoded result. A mismatch is a
// malformed-output condition for the caller, never silently coerced.
func (r TailoredResumeResult) Validate() error {
	if strings.TrimSpace(r.Resume.Name) == "" {
		return fmt.Errorf("resume.name is missing")
	}
	if len(r.Resume.Skills) == 0 {
		return fmt.Errorf("resume.skills is missing or empty")
	}
	for i, exp := range r.Resume.Experience {
		if strings.TrimSpace(exp.Title) == "" {
			return fmt.Errorf("resume.experience[%d].title is missing", i)
		}
	}
	if strings.TrimSpace(r.Analysis.SuccessProbability) == "" {
		return fmt.Errorf("analysis.success_probability is missing")
	}
	if r.Analysis.KeywordsFound == nil {
		return fmt.Errorf("analysis.keywords_found is missing")
	}
	return nil
}

// FormatForPrompt renders a structured resume as plain text suitable for
// embedding in a prompt.
func (r TailoredResume) FormatForPrompt() string {
	var b strings.Builder
	writeLine := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			b.WriteString(label)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}
	writeLine("Name", r.Name)
	writeLine("Contact", r.ContactDetails)
	writeLine("Summary", r.Summary)
	if len(r.Skills) > 0 {
		writeLine("Skills", strings.Join(r.Skills, ", "))
	}
	for _, exp := range r.Experience {
		b.WriteString(fmt.Sprintf("Experience: %s at %s (%s)\n%s\n", exp.Title, exp.Company, exp.Dates, exp.Description))
	}
	for _, edu := range r.Education {
		b.WriteString(fmt.Sprintf("Education: %s, %s (%s)\n", edu.Degree, edu.University, edu.Dates))
	}
	for _, p := range r.Projects {
		b.WriteString(fmt.Sprintf("Project: %s - %s\n", p.Name, p.Description))
	}
	if len(r.Certifications) > 0 {
		writeLine("Certifications", strings.Join(r.Certifications, ", "))
	}
	return strings.TrimSpace(b.String())
}
