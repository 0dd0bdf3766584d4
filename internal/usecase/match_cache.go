package usecase

import (
	"context"
	"time"
)

// ResultCache is the subset of the Redis wrapper the match usecase needs.
// Safe to leave nil: both matchers are cheap enough to always recompute.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}
