package resumes

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"coverletter-backend/internal/extract"
	"coverletter-backend/internal/shared/metrics"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/telemetry"
	"coverletter-backend/internal/shared/util"
)

// MaxUploadBytes is the largest accepted résumé file.
const MaxUploadBytes = 5 * 1024 * 1024

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// Service contains business logic for résumés.
type Service struct {
	Store   object.ObjectStore
	Repo    Repo
	Now     func() time.Time
	Extract func(ctx context.Context, data []byte, format extract.Format) string
}

// NewService constructs a Service with the default clock and extractor.
func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo, Now: time.Now, Extract: extract.Extract}
}

// Upload validates the file, stores it, extracts its text and records it as the only
// résumé. Files of the résumés it replaces are removed afterwards.
func (s *Service) Upload(ctx context.Context, originalName, mimeType string, data []byte) (Resume, error) {
	originalName = strings.TrimSpace(originalName)
	if originalName == "" || len(data) == 0 {
		return Resume{}, ErrInvalidInput
	}
	if len(data) > MaxUploadBytes {
		return Resume{}, ErrTooLarge
	}
	format := extract.ParseFormat(mimeType, data)
	if format == extract.FormatUnsupported {
		return Resume{}, ErrInvalidFormat
	}

	now := s.now()
	fileName := storedName(now, originalName, format)
	size, err := s.Store.SaveWithKey(ctx, fileName, format.MimeType(), bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("%w: save file: %v", ErrStore, err)
	}

	content := s.extract(ctx, data, format)

	stored, pruned, err := s.Repo.InsertLatest(ctx, Resume{
		FileName:     fileName,
		OriginalName: originalName,
		FilePath:     s.Store.Location(fileName),
		FileSize:     size,
		MimeType:     format.MimeType(),
		Content:      content,
		UploadedAt:   now.UTC(),
	})
	if err != nil {
		s.removeFile(ctx, fileName)
		return Resume{}, fmt.Errorf("%w: insert: %v", ErrStore, err)
	}

	for _, old := range pruned {
		s.removeFile(ctx, old.FileName)
	}

	metrics.IncResumeUploads()
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":     stored.ID,
		"file_name":     stored.FileName,
		"format":        format.String(),
		"file_size":     stored.FileSize,
		"content_chars": len(stored.Content),
		"pruned":        len(pruned),
	})
	return stored, nil
}

// Latest returns the current résumé.
func (s *Service) Latest(ctx context.Context) (Resume, error) {
	return s.Repo.Latest(ctx)
}

// Get returns the résumé with id.
func (s *Service) Get(ctx context.Context, id int64) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// Delete removes the résumé record and then its file. A file that is already gone
// does not fail the call.
func (s *Service) Delete(ctx context.Context, id int64) (Resume, error) {
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	s.removeFile(ctx, deleted.FileName)
	telemetry.Info("resume.deleted", map[string]any{"resume_id": id, "file_name": deleted.FileName})
	return deleted, nil
}

func (s *Service) removeFile(ctx context.Context, fileName string) {
	if fileName == "" {
		return
	}
	if err := s.Store.Delete(ctx, fileName); err != nil {
		metrics.IncArtifactCleanupFailed()
		telemetry.Warn("resume.file_cleanup_failed", map[string]any{
			"file_name": fileName,
			"error":     err,
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) extract(ctx context.Context, data []byte, format extract.Format) string {
	if s.Extract != nil {
		return s.Extract(ctx, data, format)
	}
	return extract.Extract(ctx, data, format)
}

// storedName returns "resume-<unix ms>-<9 random digits><ext>". The original extension is
// kept when it looks like one; otherwise the format's extension is used.
func storedName(now time.Time, originalName string, format extract.Format) string {
	ext := util.Ext(originalName)
	if !extPattern.MatchString(ext) {
		ext = format.Extension()
	}
	return fmt.Sprintf("resume-%d-%09d%s", now.UnixMilli(), randomSuffix(), ext)
}

func randomSuffix() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return time.Now().UnixNano() % 1_000_000_000
	}
	return n.Int64()
}
