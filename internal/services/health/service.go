package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service reports whether the process and its database are usable.
type Service struct {
	db      Pinger
	storage string
}

// NewService constructs a health service. A nil db means the in-memory repositories are in use.
func NewService(db Pinger, storage string) *Service {
	return &Service{db: db, storage: storage}
}

// Status is the /health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Storage  string `json:"storage"`
}

// Check pings the database, if any. An unreachable database marks the service unhealthy.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", Storage: s.storage}
	if s.db == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "unreachable"
		return st
	}
	st.Database = "ok"
	return st
}
