package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers used for document analysis.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn completion.
type Request struct {
	System string
	Prompt string
	// JSON asks the provider to constrain the reply to a JSON object.
	JSON bool
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// ErrEmptyResponse is returned when a provider answers without any content.
var ErrEmptyResponse = errors.New("LLM returned empty content")

// PlaceholderClient is used when no provider credentials are available. Every
// analysis through it fails, which leaves uploads usable without an LLM.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
