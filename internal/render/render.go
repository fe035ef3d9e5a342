package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/util"
)

// ErrFailed wraps any layout or write failure.
var ErrFailed = errors.New("render failed")

const contentTypePDF = "application/pdf"

// Engine lays a Letter out as a PDF document.
type Engine interface {
	Render(ctx context.Context, letter Letter, w io.Writer) error
}

// Artifact describes a stored letter document.
type Artifact struct {
	Name string
	Path string
	Size int64
}

// Renderer lays out letters with an Engine and stores them under unique names.
type Renderer struct {
	engine Engine
	store  object.ObjectStore

	mu        sync.Mutex
	lastStamp int64
}

// New constructs a Renderer.
func New(engine Engine, store object.ObjectStore) *Renderer {
	return &Renderer{engine: engine, store: store}
}

// Render lays out text dated now and writes the document to the object store. The
// document is fully built in memory first, so nothing is stored when layout fails.
func (r *Renderer) Render(ctx context.Context, text, jobTitle, company string, now time.Time) (Artifact, error) {
	letter := Compose(text, jobTitle, company, now)

	var buf bytes.Buffer
	if err := r.engine.Render(ctx, letter, &buf); err != nil {
		return Artifact{}, fmt.Errorf("%w: layout: %v", ErrFailed, err)
	}

	name := ArtifactName(company, r.nextStamp(now))
	size, err := r.store.SaveWithKey(ctx, name, contentTypePDF, &buf)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: write %s: %v", ErrFailed, name, err)
	}
	return Artifact{Name: name, Path: r.store.Location(name), Size: size}, nil
}

// ArtifactName returns "cover-letter-<slug>-<stamp>.pdf" where every character of
// company outside [A-Za-z0-9] becomes a hyphen.
func ArtifactName(company string, stamp int64) string {
	return fmt.Sprintf("cover-letter-%s-%d.pdf", util.Slug(company), stamp)
}

// nextStamp returns a millisecond stamp strictly greater than any previous one.
func (r *Renderer) nextStamp(now time.Time) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ms := now.UnixMilli()
	if ms <= r.lastStamp {
		ms = r.lastStamp + 1
	}
	r.lastStamp = ms
	return ms
}
