package generate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumegen-backend/internal/llm"
	"resumegen-backend/internal/respond"
)

// Handler exposes the generation endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a generation handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes registers generation routes on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-resume", h.generateResume)
	rg.POST("/generate-cover-letter", h.generateCoverLetter)
}

type resumeRequest struct {
	JobDescription string `json:"job_description"`
	ResumeText     string `json:"resume_text"`
}

type coverLetterRequest struct {
	ResumeText     TailoredResume `json:"resume_text"`
	JobDescription string         `json:"job_description"`
}

func (h *Handler) generateResume(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid request body", nil)
		return
	}
	var details []respond.FieldDetail
	if strings.TrimSpace(req.JobDescription) == "" {
		details = append(details, respond.FieldDetail{Field: "job_description", Issue: "required"})
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		details = append(details, respond.FieldDetail{Field: "resume_text", Issue: "required"})
	}
	if len(details) > 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "missing required fields", details)
		return
	}

	result, err := h.Svc.Tailor(c.Request.Context(), req.JobDescription, req.ResumeText)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) generateCoverLetter(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}

	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "missing required fields", []respond.FieldDetail{
			{Field: "job_description", Issue: "required"},
		})
		return
	}

	letter, err := h.Svc.WriteCoverLetter(c.Request.Context(), req.JobDescription, req.ResumeText.FormatForPrompt())
	if err != nil {
		// The cover-letter path surfaces all generation failures as a
		// server-side error; there is no structured output to reject.
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate cover letter", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"cover_letter": letter})
}

func writePipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyGeneration):
		respond.Error(c, http.StatusBadRequest, "empty_generation_response", "AI response was empty", nil)
	case errors.Is(err, ErrMalformedOutput):
		respond.Error(c, http.StatusBadRequest, "malformed_generation_output", "no valid JSON found in AI response", nil)
	case errors.Is(err, llm.ErrUnavailable):
		respond.Error(c, http.StatusBadGateway, "generation_unavailable", "text generation service unavailable", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate resume", nil)
	}
}
