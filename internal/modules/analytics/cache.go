package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freshline/supply-backend/internal/cache"
	"github.com/freshline/supply-backend/internal/modules/reservation"
)

// ProjectionTTL is the time-to-live for cached projections. Reports over
// live workflow data go stale fast, so the window is short.
const ProjectionTTL = 60 * time.Second

const projectionKeyPrefix = "analytics"

// ProjectionStore is the cache surface the service reads and writes
// projections through. ProjectionCache is the Redis implementation; tests
// substitute an in-memory one.
type ProjectionStore interface {
	// Get loads a cached projection into v. Returns false on a miss.
	Get(ctx context.Context, key string, v any) (bool, error)
	// Set stores a projection under key.
	Set(ctx context.Context, key string, v any) error
}

// ProjectionCache stores computed projections in Redis as JSON strings.
// It is strictly best-effort: a miss or a Redis failure just means the
// projection is recomputed from Postgres.
type ProjectionCache struct {
	client *cache.RedisClient
}

// NewProjectionCache creates a ProjectionCache backed by the given client.
func NewProjectionCache(r *cache.RedisClient) *ProjectionCache {
	return &ProjectionCache{client: r}
}

// Get loads a cached projection into v. Returns false on a miss.
func (c *ProjectionCache) Get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := c.client.Client().Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores a projection under key with the projection TTL.
func (c *ProjectionCache) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, key, raw, ProjectionTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func demandKey(status reservation.Status, dim Dimension, from, to time.Time) string {
	return fmt.Sprintf("%s:demand:%s:%s:%s:%s",
		projectionKeyPrefix, status, dim, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func seasonalKey(year int) string {
	return fmt.Sprintf("%s:seasonal:%d", projectionKeyPrefix, year)
}

func forecastKey(fruitID int64, from, to time.Time) string {
	return fmt.Sprintf("%s:forecast:%d:%s:%s",
		projectionKeyPrefix, fruitID, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
