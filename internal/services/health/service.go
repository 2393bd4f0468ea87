package health

import (
	"context"
	"database/sql"
	"time"
)

// Database states reported by Status.
const (
	DatabaseUp     = "up"
	DatabaseDown   = "down"
	DatabaseMemory = "memory"
)

// Report is the health payload.
type Report struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB          *sql.DB
	PingTimeout time.Duration
}

// NewService constructs a health service. A nil db means in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db, PingTimeout: 2 * time.Second}
}

// Status pings the database when there is one.
func (s *Service) Status(ctx context.Context) Report {
	if s == nil || s.DB == nil {
		return Report{OK: true, Database: DatabaseMemory}
	}
	timeout := s.PingTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return Report{OK: false, Database: DatabaseDown}
	}
	return Report{OK: true, Database: DatabaseUp}
}
