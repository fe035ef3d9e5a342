package resumes

import "context"

// Repo defines persistence operations for résumés.
type Repo interface {
	// InsertLatest stores r and removes every other row in one unit. It returns the
	// stored row and the rows that were pruned so their files can be removed.
	InsertLatest(ctx context.Context, r Resume) (Resume, []Resume, error)
	Latest(ctx context.Context) (Resume, error)
	GetByID(ctx context.Context, id int64) (Resume, error)
	ListRecent(ctx context.Context, limit int) ([]Resume, error)
	// Delete removes the row and returns it.
	Delete(ctx context.Context, id int64) (Resume, error)
}
