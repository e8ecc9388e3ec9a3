// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"fred_dashboard/internal/feature/indicators/usecase"
	"fred_dashboard/internal/platform/cache"
	"fred_dashboard/internal/platform/config"
	"fred_dashboard/internal/platform/externalapi/fred"
	infrahttp "fred_dashboard/internal/platform/http"
	"fred_dashboard/internal/shared/ratelimiter"
)

// Cache backend names reported by /healthz.
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
)

// limiterWindow is the period over which cfg.RateLimit requests are allowed.
const limiterWindow = time.Minute

// NewFredObservations creates a FRED client with HTTP client and rate limiter.
func NewFredObservations(cfg fred.Config) *fred.FredObservations {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, limiterWindow)
	return fred.NewFredObservations(cfg, httpClient, limiter)
}

// NewSeriesRepository wraps the FRED client with a cache.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process LRU.
func NewSeriesRepository(cfg *config.Config, rdb *redis.Client) (usecase.SeriesRepository, string) {
	inner := NewFredObservations(cfg.Fred)
	if rdb != nil {
		return cache.NewCachingSeriesRepository(rdb, cfg.Cache.TTL, inner, cfg.Cache.Namespace), CacheRedis
	}
	return cache.NewMemorySeriesRepository(inner, cfg.Cache.MemoryEntries, cfg.Cache.TTL, cfg.Cache.Namespace), CacheMemory
}

// NewIndicatorUsecase builds the usecase. A credential error found at load time
// is passed through so every request reports it without calling FRED.
func NewIndicatorUsecase(cfg *config.Config, rdb *redis.Client) (*usecase.IndicatorUsecase, string) {
	repo, backend := NewSeriesRepository(cfg, rdb)
	// A shared fetch may wait one limiter window and then make one request.
	uc := usecase.NewIndicatorUsecase(repo, cfg.CredentialError()).
		WithFetchTimeout(limiterWindow + cfg.Fred.Timeout)
	return uc, backend
}
