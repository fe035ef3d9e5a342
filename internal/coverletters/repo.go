package coverletters

import "context"

// Repo defines persistence operations for cover letters.
type Repo interface {
	// Create stores cl and returns it with its assigned ID.
	Create(ctx context.Context, cl CoverLetter) (CoverLetter, error)
	GetByID(ctx context.Context, id int64) (CoverLetter, error)
	// ListRecent returns at most limit letters, newest first.
	ListRecent(ctx context.Context, limit int) ([]CoverLetter, error)
	// Delete removes the row and returns it.
	Delete(ctx context.Context, id int64) (CoverLetter, error)
}
