// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/usecase"
	"fred_dashboard/internal/platform/metrics"
)

const (
	// DefaultTTL is applied when the configured TTL is zero or negative.
	DefaultTTL = time.Hour
	// DefaultNamespace prefixes every cache key.
	DefaultNamespace = "fred"

	backendRedis = "redis"
)

// CachingSeriesRepository decorates a SeriesRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingSeriesRepository struct {
	inner     usecase.SeriesRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SeriesRepository = (*CachingSeriesRepository)(nil)

// NewCachingSeriesRepository decorates a SeriesRepository with Redis caching.
// If ttl is 0, it defaults to one hour. If namespace is empty, it uses "fred".
func NewCachingSeriesRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SeriesRepository, namespace string) *CachingSeriesRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingSeriesRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchObservations は観測値をキャッシュから返し、なければ内部リポジトリから取得して保存します。
func (c *CachingSeriesRepository) FetchObservations(ctx context.Context, seriesID string, rng entity.DateRange) ([]entity.Observation, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FetchObservations(ctx, seriesID, rng)
	}

	key := c.cacheKey(seriesID, rng)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Observation
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.RecordCacheHit(backendRedis)
			return out, nil
		}
		// Delete corrupted cache entry
		slog.Warn("corrupted cache entry", "key", key)
		_ = c.rdb.Del(ctx, key).Err()
	}
	metrics.RecordCacheMiss(backendRedis)

	// 2) Fallback to upstream
	out, err := c.inner.FetchObservations(ctx, seriesID, rng)
	if err != nil {
		return nil, err
	}
	// 空の結果はキャッシュしない
	if len(out) == 0 {
		return out, nil
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Debug("cache set failed", "key", key, "error", err)
		}
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingSeriesRepository) cacheKey(seriesID string, rng entity.DateRange) string {
	return seriesKey(c.namespace, seriesID, rng)
}

func seriesKey(namespace, seriesID string, rng entity.DateRange) string {
	return fmt.Sprintf("%s:%s:%s:%s",
		namespace,
		safe(seriesID),
		rng.Start.Format(entity.DateLayout),
		rng.End.Format(entity.DateLayout),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
