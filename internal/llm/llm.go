package llm

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the generation backend failed or returned nothing usable.
var ErrUnavailable = errors.New("generation service unavailable")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// Request carries the inputs for one cover letter.
type Request struct {
	ResumeText     string
	JobTitle       string
	Company        string
	JobDescription string
}

// Completer sends a single prompt to a text-generation backend.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces cover letter text for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// PlaceholderClient stands in when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
