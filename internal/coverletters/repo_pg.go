package coverletters

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const letterColumns = `id, job_title, company, job_description, cover_letter_text, pdf_filename, pdf_path, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLetter(s rowScanner) (CoverLetter, error) {
	var cl CoverLetter
	err := s.Scan(
		&cl.ID,
		&cl.JobTitle,
		&cl.Company,
		&cl.JobDescription,
		&cl.Text,
		&cl.FileName,
		&cl.FilePath,
		&cl.CreatedAt,
	)
	return cl, err
}

// Create inserts a new cover letter.
func (r *PGRepo) Create(ctx context.Context, cl CoverLetter) (CoverLetter, error) {
	const query = `
INSERT INTO cover_letters (job_title, company, job_description, cover_letter_text, pdf_filename, pdf_path, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		cl.JobTitle,
		cl.Company,
		cl.JobDescription,
		cl.Text,
		cl.FileName,
		cl.FilePath,
		cl.CreatedAt,
	).Scan(&cl.ID)
	if err != nil {
		return CoverLetter{}, err
	}
	return cl, nil
}

// GetByID returns the letter with id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (CoverLetter, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+letterColumns+` FROM cover_letters WHERE id = $1`, id)
	return oneLetter(row)
}

// ListRecent returns up to limit letters, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]CoverLetter, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+letterColumns+` FROM cover_letters ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CoverLetter{}
	for rows.Next() {
		cl, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

// Delete removes the letter with id and returns it.
func (r *PGRepo) Delete(ctx context.Context, id int64) (CoverLetter, error) {
	row := r.DB.QueryRowContext(ctx, `DELETE FROM cover_letters WHERE id = $1 RETURNING `+letterColumns, id)
	return oneLetter(row)
}

func oneLetter(row *sql.Row) (CoverLetter, error) {
	cl, err := scanLetter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return cl, nil
}

var _ Repo = (*PGRepo)(nil)
