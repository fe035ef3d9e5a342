package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coverletter-backend/internal/shared/storage/object"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestSaveOpenDelete(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	n, err := store.SaveWithKey(ctx, "cover-letter-Acme-1.pdf", "application/pdf", strings.NewReader("%PDF-1.3"))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes written, got %d", n)
	}
	if got := store.Location("cover-letter-Acme-1.pdf"); got != filepath.Join(dir, "cover-letter-Acme-1.pdf") {
		t.Fatalf("unexpected location: %s", got)
	}

	rc, err := store.Open(ctx, "cover-letter-Acme-1.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "%PDF-1.3" {
		t.Fatalf("unexpected body: %q", body)
	}

	if err := store.Delete(ctx, "cover-letter-Acme-1.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cover-letter-Acme-1.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	if err := store.Delete(ctx, "cover-letter-Acme-1.pdf"); err != nil {
		t.Fatalf("second Delete should tolerate missing file: %v", err)
	}
	if _, err := store.Open(ctx, "cover-letter-Acme-1.pdf"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	if _, err := store.SaveWithKey(context.Background(), "broken.pdf", "application/pdf", failingReader{}); err == nil {
		t.Fatalf("expected write error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files after failed save, found %d", len(entries))
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../escape.pdf", "/etc/passwd", "."} {
		if _, err := store.SaveWithKey(context.Background(), key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}
