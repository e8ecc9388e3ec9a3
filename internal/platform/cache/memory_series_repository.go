package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/usecase"
	"fred_dashboard/internal/platform/metrics"
)

const (
	// DefaultMemoryEntries bounds the in-process cache.
	DefaultMemoryEntries = 256

	backendMemory = "memory"
)

// MemorySeriesRepository はRedisが使えない場合のプロセス内キャッシュです。
// エントリはTTLで失効し、件数が上限を超えると古いものから追い出されます。
type MemorySeriesRepository struct {
	inner     usecase.SeriesRepository
	lru       *expirable.LRU[string, []entity.Observation]
	namespace string
}

var _ usecase.SeriesRepository = (*MemorySeriesRepository)(nil)

// NewMemorySeriesRepository decorates a SeriesRepository with an expiring LRU cache.
func NewMemorySeriesRepository(inner usecase.SeriesRepository, size int, ttl time.Duration, namespace string) *MemorySeriesRepository {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &MemorySeriesRepository{
		inner:     inner,
		lru:       expirable.NewLRU[string, []entity.Observation](size, nil, ttl),
		namespace: namespace,
	}
}

// FetchObservations returns cached observations or loads them from the inner repository.
func (m *MemorySeriesRepository) FetchObservations(ctx context.Context, seriesID string, rng entity.DateRange) ([]entity.Observation, error) {
	key := seriesKey(m.namespace, seriesID, rng)

	if out, ok := m.lru.Get(key); ok {
		metrics.RecordCacheHit(backendMemory)
		return clone(out), nil
	}
	metrics.RecordCacheMiss(backendMemory)

	out, err := m.inner.FetchObservations(ctx, seriesID, rng)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		m.lru.Add(key, clone(out))
	}
	return out, nil
}

// Len returns the number of live entries.
func (m *MemorySeriesRepository) Len() int {
	return m.lru.Len()
}

// 呼び出し側によるスライス変更がキャッシュに波及しないようにコピーする
func clone(in []entity.Observation) []entity.Observation {
	out := make([]entity.Observation, len(in))
	copy(out, in)
	return out
}
