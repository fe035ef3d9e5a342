package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coverletter-backend/internal/shared/telemetry"
)

// Service turns a Request into letter text through a Completer. Every failure,
// including an empty response, is reported as ErrUnavailable. There is no retry.
type Service struct {
	completer Completer
	provider  string
}

// NewService wraps completer. A nil completer behaves like PlaceholderClient.
func NewService(completer Completer, provider string) *Service {
	if completer == nil {
		completer = PlaceholderClient{}
	}
	return &Service{completer: completer, provider: provider}
}

// Generate builds the prompt and returns the backend's text unchanged apart from
// surrounding whitespace.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)
	start := time.Now()

	out, err := s.completer.Complete(ctx, prompt)
	fields := map[string]any{
		"provider":       s.provider,
		"prompt_version": PromptVersion,
		"prompt_sha256":  hashPrompt(prompt),
		"duration_ms":    time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		telemetry.Error("llm.generate_failed", fields)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(out)
	if text == "" {
		telemetry.Error("llm.generate_empty", fields)
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	fields["chars"] = len(text)
	telemetry.Info("llm.generate_ok", fields)
	return text, nil
}

var _ Generator = (*Service)(nil)
