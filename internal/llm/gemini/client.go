package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"coverletter-backend/internal/llm"
)

const defaultModel = "gemini-1.5-flash"

// Client implements llm.Completer against the Gemini API.
type Client struct {
	model   llms.Model
	timeout time.Duration
}

// NewClient constructs a Gemini-backed client. An empty model falls back to the default.
// The timeout bounds each call through its context: a custom *http.Client would replace
// the API key transport of the underlying Google client.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	m, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(strings.TrimSpace(model)),
		googleai.WithRest(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini: %w", err)
	}
	return newWithModel(m, timeout), nil
}

func newWithModel(m llms.Model, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{model: m, timeout: timeout}
}

// Complete sends the prompt as a single human message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.7))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini request timeout: %w", err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(out)
	if text == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return text, nil
}

var _ llm.Completer = (*Client)(nil)
