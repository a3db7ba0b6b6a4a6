package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable indicates the remote text-generation service could not be
// reached or returned a transport/service error. Providers wrap their
// failures with this sentinel so callers can map it uniformly.
var ErrUnavailable = errors.New("generation service unavailable")

// Generation is the tagged result of a generation call. A successful call may
// still carry blank text; callers must check Blank() rather than assume
// usable output.
type Generation struct {
	Text string
}

// Blank reports whether the generation carries no usable text.
func (g Generation) Blank() bool {
	return strings.TrimSpace(g.Text) == ""
}

// Client abstracts a remote generative-text provider. Each call is a fresh
// remote invocation: no caching, no deduplication, no retries.
type Client interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (Generation, error) {
	_ = ctx
	_ = prompt
	return Generation{}, ErrNotConfigured
}
