package coverletters

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[int64]CoverLetter
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[int64]CoverLetter)}
}

// Create assigns the next id and stores cl.
func (m *MemoryRepo) Create(ctx context.Context, cl CoverLetter) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cl.ID = m.seq
	m.rows[cl.ID] = cl
	return cl, nil
}

// GetByID returns the letter with id.
func (m *MemoryRepo) GetByID(ctx context.Context, id int64) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cl, ok := m.rows[id]
	if !ok {
		return CoverLetter{}, ErrNotFound
	}
	return cl, nil
}

// ListRecent returns up to limit letters ordered by creation time, newest first.
func (m *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]CoverLetter, 0, len(m.rows))
	for _, cl := range m.rows {
		out = append(out, cl)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes the letter with id.
func (m *MemoryRepo) Delete(ctx context.Context, id int64) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cl, ok := m.rows[id]
	if !ok {
		return CoverLetter{}, ErrNotFound
	}
	delete(m.rows, id)
	return cl, nil
}

var _ Repo = (*MemoryRepo)(nil)
