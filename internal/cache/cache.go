// Package cache provides the fingerprint-keyed result cache shared by the
// classification and verification pipelines.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL-bounded byte store. Implementations must treat an expired
// entry as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

type entry struct {
	payload   []byte
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && now.Sub(e.createdAt) > e.ttl
}
