package render

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/storage/object/local"
)

type stubEngine struct {
	err error
}

func (s stubEngine) Render(ctx context.Context, letter Letter, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, "%PDF-stub "+strings.Join(letter.Paragraphs, "|"))
	return err
}

type failingStore struct {
	object.ObjectStore
}

func (failingStore) SaveWithKey(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	return 0, errors.New("disk full")
}

var fixedNow = time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "two paragraphs", in: "First.\n\nSecond.", want: []string{"First.", "Second."}},
		{name: "extra blank lines", in: "\n\nA\n\n\n\n  B  \n\n", want: []string{"A", "B"}},
		{name: "single newline kept", in: "Line one\nline two", want: []string{"Line one\nline two"}},
		{name: "windows newlines", in: "A\r\n\r\nB", want: []string{"A", "B"}},
		{name: "empty", in: "   ", want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitParagraphs(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("SplitParagraphs(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2024, time.July, 9, 0, 0, 0, 0, time.UTC)); got != "July 9, 2024" {
		t.Fatalf("unexpected date %q", got)
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("Acme Corp", 1700000000000); got != "cover-letter-Acme-Corp-1700000000000.pdf" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := ArtifactName("R&D / Labs", 1); got != "cover-letter-R-D---Labs-1.pdf" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestRenderWritesPDFArtifact(t *testing.T) {
	dir := t.TempDir()
	store := local.New(dir)
	r := New(NewPDFEngine(), store)

	text := "I am excited to apply for the role.\n\nMy background in distributed systems fits your team."
	art, err := r.Render(context.Background(), text, "Backend Engineer", "Acme Corp", time.Now())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !regexp.MustCompile(`^cover-letter-Acme-Corp-\d+\.pdf$`).MatchString(art.Name) {
		t.Fatalf("unexpected artifact name %q", art.Name)
	}
	if art.Path != filepath.Join(dir, art.Name) {
		t.Fatalf("unexpected artifact path %q", art.Path)
	}

	data, err := os.ReadFile(art.Path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("artifact is not a pdf")
	}
	if int64(len(data)) != art.Size {
		t.Fatalf("size mismatch: file %d, artifact %d", len(data), art.Size)
	}

	content, err := extract.Text(context.Background(), data, extract.FormatPDF)
	if err != nil {
		t.Fatalf("read back pdf: %v", err)
	}
	for _, want := range []string{"Dear Hiring Manager,", "Sincerely,", "[Your Phone]"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in rendered letter, got %q", want, content)
		}
	}
}

func TestRenderStampsStrictlyIncrease(t *testing.T) {
	r := New(stubEngine{}, local.New(t.TempDir()))

	var names []string
	for i := 0; i < 3; i++ {
		art, err := r.Render(context.Background(), "Body", "Engineer", "Acme Corp", fixedNow)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		names = append(names, art.Name)
	}
	want := []string{
		"cover-letter-Acme-Corp-1741082400000.pdf",
		"cover-letter-Acme-Corp-1741082400001.pdf",
		"cover-letter-Acme-Corp-1741082400002.pdf",
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("name %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestConcurrentRendersNeverCollide(t *testing.T) {
	r := New(stubEngine{}, local.New(t.TempDir()))

	const n = 25
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			art, err := r.Render(context.Background(), "Body", "Engineer", "Acme", fixedNow)
			if err != nil {
				t.Errorf("Render: %v", err)
				return
			}
			mu.Lock()
			seen[art.Name] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != n {
		t.Fatalf("expected %d unique names, got %d", n, len(seen))
	}
}

func TestRenderFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := New(stubEngine{err: errors.New("font missing")}, local.New(dir)).Render(context.Background(), "Body", "t", "c", time.Now())
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed for layout error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected nothing stored after layout failure")
	}

	_, err = New(stubEngine{}, failingStore{}).Render(context.Background(), "Body", "t", "c", time.Now())
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed for write error, got %v", err)
	}
}

func TestChromeHTMLEscapesContent(t *testing.T) {
	letter := Compose("Hello <b>team</b>\n\nSecond paragraph", "Engineer", "Acme & Sons", fixedNow)
	html, err := NewChromeEngine().HTML(letter)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{"COVER LETTER", "March 4, 2025", "Acme &amp; Sons", "Hello &lt;b&gt;team&lt;/b&gt;", "Second paragraph", "[Your Email]"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in html", want)
		}
	}
}
