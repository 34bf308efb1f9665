package history

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Repo persists detection records.
type Repo interface {
	Create(ctx context.Context, record Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, limit, offset int) ([]Record, error)
}
