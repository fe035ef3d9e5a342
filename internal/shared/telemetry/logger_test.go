package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read output: %v", err)
	}
	return buf.String()
}

func TestErrorWritesJSONLine(t *testing.T) {
	out := captureStdout(t, func() {
		Error("extract.degraded", map[string]any{
			"format": "pdf",
			"error":  errors.New("bad xref"),
		})
	})

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &payload); err != nil {
		t.Fatalf("decode log line %q: %v", out, err)
	}
	if payload["level"] != "error" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["msg"] != "extract.degraded" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["error"] != "bad xref" {
		t.Fatalf("expected error string, got %v", payload["error"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts field")
	}
}

func TestLoggerReusedUntilStdoutChanges(t *testing.T) {
	first := current()
	if current() != first {
		t.Fatalf("expected cached logger while stdout is unchanged")
	}

	var swapped *slog.Logger
	out := captureStdout(t, func() {
		swapped = current()
		Info("resume.uploaded", map[string]any{"resume_id": 1})
	})
	if swapped == first {
		t.Fatalf("expected a new logger after stdout was swapped")
	}
	if !strings.Contains(out, `"msg":"resume.uploaded"`) {
		t.Fatalf("expected log line on swapped stdout, got %q", out)
	}

	out = captureStdout(t, func() {
		Warn("extract.degraded", map[string]any{"format": "doc"})
	})
	if !strings.Contains(out, `"msg":"extract.degraded"`) {
		t.Fatalf("expected log line on second swap, got %q", out)
	}
}
