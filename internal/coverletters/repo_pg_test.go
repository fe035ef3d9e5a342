package coverletters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var pgColumns = []string{"id", "job_title", "company", "job_description", "cover_letter_text", "pdf_filename", "pdf_path", "created_at"}

func TestPGRepoCreateReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	in := CoverLetter{
		JobTitle:       "Engineer",
		Company:        "Acme",
		JobDescription: "",
		Text:           "Dear Hiring Manager,",
		FileName:       "cover-letter-Acme-1.pdf",
		FilePath:       "uploads/cover-letter-Acme-1.pdf",
		CreatedAt:      now,
	}
	mock.ExpectQuery("INSERT INTO cover_letters").
		WithArgs(in.JobTitle, in.Company, in.JobDescription, in.Text, in.FileName, in.FilePath, in.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	got, err := (&PGRepo{DB: db}).Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != 11 || got.FileName != in.FileName {
		t.Fatalf("unexpected letter %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecentOrdersAndLimits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM cover_letters ORDER BY created_at DESC, id DESC LIMIT \\$1").
		WithArgs(HistoryLimit).
		WillReturnRows(sqlmock.NewRows(pgColumns).
			AddRow(int64(2), "B", "Beta", "", "text b", "b.pdf", "uploads/b.pdf", now).
			AddRow(int64(1), "A", "Alpha", "", "text a", "a.pdf", "uploads/a.pdf", now.Add(-time.Minute)))

	list, err := (&PGRepo{DB: db}).ListRecent(context.Background(), HistoryLimit)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 || list[1].Company != "Alpha" {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT (.+) FROM cover_letters WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(pgColumns))
	mock.ExpectQuery("DELETE FROM cover_letters WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(pgColumns))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Delete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
