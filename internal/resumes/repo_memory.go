package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[int64]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[int64]Resume)}
}

// InsertLatest assigns the next id to r, stores it and prunes every other row.
func (m *MemoryRepo) InsertLatest(ctx context.Context, r Resume) (Resume, []Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	r.ID = m.seq
	pruned := make([]Resume, 0, len(m.rows))
	for _, existing := range m.rows {
		pruned = append(pruned, existing)
	}
	sort.Slice(pruned, func(i, j int) bool { return pruned[i].ID < pruned[j].ID })

	m.rows = map[int64]Resume{r.ID: r}
	return r, pruned, nil
}

// Latest returns the most recently inserted résumé.
func (m *MemoryRepo) Latest(ctx context.Context) (Resume, error) {
	list, err := m.ListRecent(ctx, 1)
	if err != nil {
		return Resume{}, err
	}
	if len(list) == 0 {
		return Resume{}, ErrNotFound
	}
	return list[0], nil
}

// GetByID returns the résumé with id.
func (m *MemoryRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rows[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

// ListRecent returns up to limit résumés, newest first.
func (m *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Resume, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes the résumé with id.
func (m *MemoryRepo) Delete(ctx context.Context, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	delete(m.rows, id)
	return r, nil
}

var _ Repo = (*MemoryRepo)(nil)
