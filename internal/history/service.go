package history

import (
	"context"
	"time"

	"detector-backend/internal/shared/telemetry"
)

// Service wraps a Repo with the best-effort semantics the pipelines expect.
type Service struct {
	Repo Repo
}

// Save persists a record, logging failures instead of surfacing them. It is
// safe to call on a nil service.
func (s *Service) Save(ctx context.Context, record Record) {
	if s == nil || s.Repo == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Repo.Create(saveCtx, record); err != nil {
		telemetry.Error("history.save", map[string]any{
			"detection_id": record.ID,
			"error":        err.Error(),
		})
	}
}

// List returns persisted records newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if s == nil || s.Repo == nil {
		return []Record{}, nil
	}
	return s.Repo.List(ctx, limit, offset)
}
