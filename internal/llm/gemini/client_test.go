package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	text    string
	err     error
	block   bool
	prompt  string
	options llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, opt := range options {
		opt(&f.options)
	}
	if len(messages) == 1 && len(messages[0].Parts) == 1 {
		if tc, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = tc.Text
		}
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.text}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestCompleteSendsPromptAndTrims(t *testing.T) {
	m := &fakeModel{text: "  Dear Hiring Manager,\n\nI am excited.\n"}
	client := newWithModel(m, time.Second)

	out, err := client.Complete(context.Background(), "write a letter")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "Dear Hiring Manager,\n\nI am excited." {
		t.Fatalf("unexpected output %q", out)
	}
	if m.prompt != "write a letter" {
		t.Fatalf("unexpected prompt %q", m.prompt)
	}
	if m.options.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", m.options.Temperature)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeModel
		want  string
	}{
		{name: "api error", model: &fakeModel{err: errors.New("googleapi: Error 429: quota")}, want: "quota"},
		{name: "empty text", model: &fakeModel{text: "   "}, want: "empty content"},
		{name: "timeout", model: &fakeModel{block: true}, want: "timeout"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client := newWithModel(tt.model, 20*time.Millisecond)
			_, err := client.Complete(context.Background(), "prompt")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), " ", "", time.Second); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
