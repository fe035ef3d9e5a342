package coverletters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coverletter-backend/internal/llm"
	"coverletter-backend/internal/render"
	"coverletter-backend/internal/resumes"
	"coverletter-backend/internal/shared/metrics"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/telemetry"
)

// ResumeSource supplies the current résumé.
type ResumeSource interface {
	Latest(ctx context.Context) (resumes.Resume, error)
}

// Renderer lays out and stores a letter document.
type Renderer interface {
	Render(ctx context.Context, text, jobTitle, company string, now time.Time) (render.Artifact, error)
}

// GenerateInput is the job a letter is written for.
type GenerateInput struct {
	JobTitle       string
	Company        string
	JobDescription string
}

// Service runs the generation pipeline and manages stored letters.
type Service struct {
	Resumes   ResumeSource
	Generator llm.Generator
	Renderer  Renderer
	Store     object.ObjectStore
	Repo      Repo
	Now       func() time.Time
}

// Generate validates the job, fetches the latest résumé, generates the letter text,
// renders it and records the result. Each failure is a *StageError naming the step
// that failed. A rendered document whose record cannot be saved is removed.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (CoverLetter, error) {
	start := time.Now()
	metrics.IncGenerationStarted()

	cl, err := s.generate(ctx, in)
	metrics.ObserveGenerationDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Error("cover_letter.generate_failed", map[string]any{
			"stage":   string(StageOf(err)),
			"company": in.Company,
			"error":   err,
		})
		return CoverLetter{}, err
	}
	metrics.IncGenerationCompleted()
	telemetry.Info("cover_letter.generated", map[string]any{
		"cover_letter_id": cl.ID,
		"file_name":       cl.FileName,
		"duration_ms":     time.Since(start).Milliseconds(),
	})
	return cl, nil
}

func (s *Service) generate(ctx context.Context, in GenerateInput) (CoverLetter, error) {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Company = strings.TrimSpace(in.Company)
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	if in.JobTitle == "" || in.Company == "" {
		return CoverLetter{}, fail(StageValidating, ErrInvalidInput)
	}

	resume, err := s.Resumes.Latest(ctx)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return CoverLetter{}, fail(StageFetchingResume, ErrResumeNotFound)
		}
		return CoverLetter{}, fail(StageFetchingResume, fmt.Errorf("%w: %v", ErrStore, err))
	}

	text, err := s.Generator.Generate(ctx, llm.Request{
		ResumeText:     resume.Content,
		JobTitle:       in.JobTitle,
		Company:        in.Company,
		JobDescription: in.JobDescription,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrUnavailable) {
			err = fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
		}
		return CoverLetter{}, fail(StageGenerating, err)
	}

	now := s.now()
	art, err := s.Renderer.Render(ctx, text, in.JobTitle, in.Company, now)
	if err != nil {
		if !errors.Is(err, render.ErrFailed) {
			err = fmt.Errorf("%w: %v", render.ErrFailed, err)
		}
		return CoverLetter{}, fail(StageRendering, err)
	}

	cl, err := s.Repo.Create(ctx, CoverLetter{
		JobTitle:       in.JobTitle,
		Company:        in.Company,
		JobDescription: in.JobDescription,
		Text:           text,
		FileName:       art.Name,
		FilePath:       art.Path,
		CreatedAt:      now.UTC(),
	})
	if err != nil {
		s.removeFile(ctx, art.Name)
		return CoverLetter{}, fail(StagePersisting, fmt.Errorf("%w: %v", ErrStore, err))
	}
	return cl, nil
}

// Get returns the letter with id.
func (s *Service) Get(ctx context.Context, id int64) (CoverLetter, error) {
	return s.Repo.GetByID(ctx, id)
}

// History returns the most recent letters, newest first.
func (s *Service) History(ctx context.Context) ([]CoverLetter, error) {
	return s.Repo.ListRecent(ctx, HistoryLimit)
}

// Delete removes the letter record and then its document. A document that is
// already gone does not fail the call.
func (s *Service) Delete(ctx context.Context, id int64) (CoverLetter, error) {
	cl, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return CoverLetter{}, err
	}
	s.removeFile(ctx, cl.FileName)
	telemetry.Info("cover_letter.deleted", map[string]any{"cover_letter_id": id, "file_name": cl.FileName})
	return cl, nil
}

func (s *Service) removeFile(ctx context.Context, name string) {
	if name == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, name); err != nil {
		metrics.IncArtifactCleanupFailed()
		telemetry.Warn("cover_letter.file_cleanup_failed", map[string]any{
			"file_name": name,
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
