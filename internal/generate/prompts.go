package generate

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/tailoring_v1.txt
	tailoringPromptV1 string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterPromptV1 string
	//go:embed prompts/profile_extract_v1.txt
	profileExtractPromptV1 string
)

// TailoringPrompt builds the analysis-and-tailoring prompt. It is a pure
// function of its inputs: identical inputs always produce byte-identical
// prompts. It performs no length validation; callers are responsible for
// keeping inputs within the model's context limits.
func TailoringPrompt(jobDescription, resumeText string) string {
	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{RESUME_TEXT}}", resumeText,
	).Replace(tailoringPromptV1)
}

// CoverLetterPrompt builds the cover-letter prompt. Same purity and
// no-truncation contract as TailoringPrompt.
func CoverLetterPrompt(jobDescription, resumeText string) string {
	return strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", jobDescription,
		"{{RESUME_TEXT}}", resumeText,
	).Replace(coverLetterPromptV1)
}

// ProfileExtractPrompt builds the prompt used to extract a structured
// profile from raw resume text during document onboarding.
func ProfileExtractPrompt(resumeText string) string {
	return strings.ReplaceAll(profileExtractPromptV1, "{{RESUME_TEXT}}", resumeText)
}
