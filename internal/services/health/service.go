package health

import (
	"context"
	"database/sql"
	"time"
)

// Service reports process health for load balancer probes.
type Service struct {
	DB *sql.DB
}

// NewService constructs a health service. DB may be nil when running on
// in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns the health payload. The database check is best effort; a
// missing database still reports ok because the app serves from memory.
func (s *Service) Status(ctx context.Context) map[string]any {
	payload := map[string]any{"ok": true}
	if s.DB == nil {
		payload["database"] = "memory"
		return payload
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		payload["database"] = "unreachable"
	} else {
		payload["database"] = "ok"
	}
	return payload
}
