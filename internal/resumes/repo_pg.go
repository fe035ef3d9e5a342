package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coverletter-backend/internal/shared/telemetry"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, filename, original_name, file_path, file_size, mime_type, content, uploaded_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(s rowScanner) (Resume, error) {
	var r Resume
	err := s.Scan(
		&r.ID,
		&r.FileName,
		&r.OriginalName,
		&r.FilePath,
		&r.FileSize,
		&r.MimeType,
		&r.Content,
		&r.UploadedAt,
	)
	return r, err
}

// InsertLatest inserts r and deletes every other row inside one transaction. The table
// lock serializes concurrent uploads. The prune runs behind a savepoint: if it fails the
// insert still commits and the leftover rows are logged.
func (r *PGRepo) InsertLatest(ctx context.Context, res Resume) (Resume, []Resume, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Resume{}, nil, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE resumes IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return Resume{}, nil, fmt.Errorf("lock resumes: %w", err)
	}

	const insert = `
INSERT INTO resumes (filename, original_name, file_path, file_size, mime_type, content, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	if err := tx.QueryRowContext(ctx, insert,
		res.FileName,
		res.OriginalName,
		res.FilePath,
		res.FileSize,
		res.MimeType,
		res.Content,
		res.UploadedAt,
	).Scan(&res.ID); err != nil {
		return Resume{}, nil, fmt.Errorf("insert resume: %w", err)
	}

	pruned, err := r.prune(ctx, tx, res.ID)
	if err != nil {
		return Resume{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return Resume{}, nil, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return res, pruned, nil
}

// prune deletes all rows but keepID. A failed delete is rolled back to the savepoint
// and reported only in logs.
func (r *PGRepo) prune(ctx context.Context, tx *sql.Tx, keepID int64) ([]Resume, error) {
	if _, err := tx.ExecContext(ctx, `SAVEPOINT prune_resumes`); err != nil {
		return nil, fmt.Errorf("savepoint: %w", err)
	}

	pruned, err := deleteOthers(ctx, tx, keepID)
	if err != nil {
		telemetry.Error("resumes.prune_failed", map[string]any{
			"kept_id": keepID,
			"error":   err,
		})
		if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT prune_resumes`); rbErr != nil {
			return nil, fmt.Errorf("rollback to savepoint: %w", rbErr)
		}
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT prune_resumes`); err != nil {
		return nil, fmt.Errorf("release savepoint: %w", err)
	}
	return pruned, nil
}

func deleteOthers(ctx context.Context, tx *sql.Tx, keepID int64) ([]Resume, error) {
	rows, err := tx.QueryContext(ctx, `DELETE FROM resumes WHERE id <> $1 RETURNING `+resumeColumns, keepID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Latest returns the newest résumé.
func (r *PGRepo) Latest(ctx context.Context) (Resume, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+resumeColumns+` FROM resumes ORDER BY uploaded_at DESC, id DESC LIMIT 1`)
	return oneResume(row)
}

// GetByID returns the résumé with id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	return oneResume(row)
}

// ListRecent returns up to limit résumés, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+resumeColumns+` FROM resumes ORDER BY uploaded_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Delete removes the résumé with id and returns it.
func (r *PGRepo) Delete(ctx context.Context, id int64) (Resume, error) {
	row := r.DB.QueryRowContext(ctx, `DELETE FROM resumes WHERE id = $1 RETURNING `+resumeColumns, id)
	return oneResume(row)
}

func oneResume(row *sql.Row) (Resume, error) {
	res, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

var _ Repo = (*PGRepo)(nil)
