package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resumegen-backend/internal/llm"
	"resumegen-backend/internal/metrics"
	"resumegen-backend/internal/telemetry"
)

// Service orchestrates prompt construction, the generation client and
// response extraction into single-shot request/response transformations.
// One outstanding model call per request; no fan-out, no batching, no
// automatic retries against the metered endpoint.
type Service struct {
	LLM llm.Client
}

// NewService constructs a generation service around the given client.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Tailor produces a structured tailored resume plus match analysis for the
// given job description and resume text.
func (s *Service) Tailor(ctx context.Context, jobDescription, resumeText string) (TailoredResumeResult, error) {
	if s == nil || s.LLM == nil {
		return TailoredResumeResult{}, errors.New("generate service not configured")
	}

	started := time.Now()
	metrics.IncGenerationStarted()

	prompt := TailoringPrompt(jobDescription, resumeText)
	gen, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		metrics.IncGenerationFailed()
		return TailoredResumeResult{}, err
	}
	if gen.Blank() {
		metrics.IncGenerationFailed()
		telemetry.Warn("generate.empty_response", map[string]any{"op": "tailor"})
		return TailoredResumeResult{}, ErrEmptyGeneration
	}

	raw, ok := ExtractJSON(gen.Text)
	if !ok {
		metrics.IncGenerationFailed()
		telemetry.Warn("generate.no_valid_json", map[string]any{"op": "tailor"})
		return TailoredResumeResult{}, fmt.Errorf("%w: no valid JSON found in response", ErrMalformedOutput)
	}

	var result TailoredResumeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		metrics.IncGenerationFailed()
		return TailoredResumeResult{}, fmt.Errorf("%w: decode: %v", ErrMalformedOutput, err)
	}
	if err := result.Validate(); err != nil {
		metrics.IncGenerationFailed()
		return TailoredResumeResult{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return result, nil
}

// WriteCoverLetter produces cover-letter prose for the given job description
// and resume text. Output is returned unmodified; no JSON extraction.
func (s *Service) WriteCoverLetter(ctx context.Context, jobDescription, resumeText string) (string, error) {
	if s == nil || s.LLM == nil {
		return "", errors.New("generate service not configured")
	}

	started := time.Now()
	metrics.IncGenerationStarted()

	prompt := CoverLetterPrompt(jobDescription, resumeText)
	gen, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		metrics.IncGenerationFailed()
		return "", err
	}
	if gen.Blank() {
		metrics.IncGenerationFailed()
		telemetry.Warn("generate.empty_response", map[string]any{"op": "cover_letter"})
		return "", ErrEmptyGeneration
	}

	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	return gen.Text, nil
}

// ExtractProfile extracts a structured resume profile from raw resume text.
// Used when onboarding an uploaded document; the result is validated against
// the same shape as the tailored resume.
func (s *Service) ExtractProfile(ctx context.Context, resumeText string) (TailoredResume, error) {
	if s == nil || s.LLM == nil {
		return TailoredResume{}, errors.New("generate service not configured")
	}

	prompt := ProfileExtractPrompt(resumeText)
	gen, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		return TailoredResume{}, err
	}
	if gen.Blank() {
		return TailoredResume{}, ErrEmptyGeneration
	}

	raw, ok := ExtractJSON(gen.Text)
	if !ok {
		return TailoredResume{}, fmt.Errorf("%w: no valid JSON found in response", ErrMalformedOutput)
	}

	var profile TailoredResume
	if err := json.Unmarshal(raw, &profile); err != nil {
		return TailoredResume{}, fmt.Errorf("%w: decode: %v", ErrMalformedOutput, err)
	}
	return profile, nil
}
