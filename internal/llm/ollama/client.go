package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"

	"coverletter-backend/internal/llm"
)

const (
	defaultModel   = "llama3"
	defaultBaseURL = "http://localhost:11434"
)

// Client implements llm.Completer against a local Ollama server.
type Client struct {
	model llms.Model
}

// NewClient constructs an Ollama-backed client.
func NewClient(model, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	m, err := lcollama.New(
		lcollama.WithModel(strings.TrimSpace(model)),
		lcollama.WithServerURL(baseURL),
		lcollama.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama: %w", err)
	}
	return &Client{model: m}, nil
}

// Complete sends the prompt as a single human message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(out), nil
}

var _ llm.Completer = (*Client)(nil)
