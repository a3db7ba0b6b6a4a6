package generate

import (
	"strings"
	"testing"
)

func TestTailoringPromptIsPure(t *testing.T) {
	jd := "Senior Go engineer, Python and FastAPI a plus"
	resume := "Jane Doe\nBackend engineer with 5 years of Go."

	first := TailoringPrompt(jd, resume)
	second := TailoringPrompt(jd, resume)
	if first != second {
		t.Fatal("TailoringPrompt is not deterministic for identical inputs")
	}
	if !strings.Contains(first, jd) {
		t.Fatal("prompt does not contain job description")
	}
	if !strings.Contains(first, resume) {
		t.Fatal("prompt does not contain resume text")
	}
	if strings.Contains(first, "{{JOB_DESCRIPTION}}") || strings.Contains(first, "{{RESUME_TEXT}}") {
		t.Fatal("prompt contains unsubstituted placeholders")
	}
}

func TestCoverLetterPromptSubstitution(t *testing.T) {
	prompt := CoverLetterPrompt("build APIs", "Name: Jane")
	if !strings.Contains(prompt, "build APIs") || !strings.Contains(prompt, "Name: Jane") {
		t.Fatalf("cover letter prompt missing inputs: %q", prompt)
	}
	if strings.Contains(prompt, "{{") {
		t.Fatalf("cover letter prompt contains unsubstituted placeholders: %q", prompt)
	}
}

func TestProfileExtractPromptSubstitution(t *testing.T) {
	prompt := ProfileExtractPrompt("Jane Doe, engineer")
	if !strings.Contains(prompt, "Jane Doe, engineer") {
		t.Fatal("profile extract prompt missing resume text")
	}
	if strings.Contains(prompt, "{{RESUME_TEXT}}") {
		t.Fatal("profile extract prompt contains unsubstituted placeholder")
	}
}

func TestPromptNoTruncation(t *testing.T) {
	long := strings.Repeat("very long resume content. ", 10000)
	prompt := TailoringPrompt("job", long)
	if !strings.Contains(prompt, long) {
		t.Fatal("long resume text was truncated or altered")
	}
}
