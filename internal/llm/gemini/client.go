package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resumegen-backend/internal/llm"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a new Gemini client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("MODEL_API is required for Gemini")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("MODEL_NAME is required for Gemini")
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: genaiClient, model: model}, nil
}

// Generate sends the prompt to Gemini and returns the raw response text.
// Blank responses are returned as-is; only transport and service failures
// are errors.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.Generation, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return llm.Generation{}, fmt.Errorf("%w: gemini generate: %v", llm.ErrUnavailable, err)
	}
	return llm.Generation{Text: resp.Text()}, nil
}

var _ llm.Client = (*Client)(nil)
