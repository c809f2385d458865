package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TwinCache is the cache surface the twin usecase needs. The redis
// adapter satisfies it; a nil or unavailable cache degrades to a
// pass-through.
type TwinCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TwinCacheKeyPrefix namespaces cached twin snapshots. Startup flushes
// the whole prefix because reseeded ontology rows can change every
// user's snapshot at once.
const TwinCacheKeyPrefix = "twin:snapshot:"

func twinCacheKey(userID uuid.UUID) string {
	return TwinCacheKeyPrefix + userID.String()
}
