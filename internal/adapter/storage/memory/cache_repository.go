package memory

import (
	"context"
	"fmt"

	"chainkit/internal/domain/entity"
	domainRepo "chainkit/internal/domain/repository"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainRepo.CacheRepository = (*CacheRepository)(nil)

const rateTableKeyPrefix = "rate_table_"

// CacheRepository implements domainRepo.CacheRepository using the go-cache in-memory library.
// Tables never expire: stale rates are preferred over none.
type CacheRepository struct {
	cache  *cache.Cache
	logger *zap.Logger
}

// NewCacheRepository creates a new in-memory cache repository instance.
// Nothing expires, so no janitor goroutine is started.
func NewCacheRepository(logger *zap.Logger) *CacheRepository {
	c := cache.New(cache.NoExpiration, 0)
	logger.Info("Initialized go-cache for memory storage")

	return &CacheRepository{
		cache:  c,
		logger: logger.Named("MemoryCacheStorage"),
	}
}

// GetRateTable retrieves the installed table of a chain, returning found status.
func (r *CacheRepository) GetRateTable(_ context.Context, chain entity.ChainID) (*entity.RateTable, bool, error) {
	key := rateTableKey(chain)
	if x, found := r.cache.Get(key); found {
		if table, ok := x.(*entity.RateTable); ok {
			r.logger.Debug("Memory cache hit", zap.String("key", key))
			return table, true, nil
		}
		r.logger.Warn(
			"Memory cache data type mismatch for key",
			zap.String("key", key), zap.Any("type", fmt.Sprintf("%T", x)),
		)
	}
	r.logger.Debug("Memory cache miss", zap.String("key", key))
	return nil, false, nil
}

// SetRateTable publishes a table for a chain in a single store.
func (r *CacheRepository) SetRateTable(_ context.Context, chain entity.ChainID, table *entity.RateTable) error {
	if table == nil {
		return fmt.Errorf("nil rate table for %s", chain)
	}
	key := rateTableKey(chain)
	r.cache.Set(key, table, cache.NoExpiration)
	r.logger.Debug("Memory cache set", zap.String("key", key), zap.Int("entries", table.Len()))
	return nil
}

// rateTableKey generates the cache key of a chain's table.
func rateTableKey(chain entity.ChainID) string {
	return rateTableKeyPrefix + chain.String()
}
