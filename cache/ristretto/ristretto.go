package ristretto

import (
	"time"

	"github.com/caasmo/balancescale/cache"
	"github.com/dgraph-io/ristretto/v2"
)

// Key restricts ristretto.Key to its comparable members so the wrapper can
// satisfy cache.Cache, whose keys must be comparable.
type Key interface {
	comparable
	ristretto.Key
}

type Cache[K Key, V any] struct {
	cache *ristretto.Cache[K, V]
}

func (rc *Cache[K, V]) Get(key K) (V, bool) {
	return rc.cache.Get(key)
}

func (rc *Cache[K, V]) Set(key K, value V, cost int64) bool {
	return rc.cache.Set(key, value, cost)
}

func (rc *Cache[K, V]) SetWithTTL(key K, value V, cost int64, ttl time.Duration) bool {
	return rc.cache.SetWithTTL(key, value, cost, ttl)
}

// Wait blocks until buffered writes have been applied. Mostly useful in
// tests, where a Set must be visible before the next Get.
func (rc *Cache[K, V]) Wait() {
	rc.cache.Wait()
}

func New[K Key, V any]() (cache.Cache[K, V], error) {
	c, err := ristretto.NewCache(&ristretto.Config[K, V]{
		NumCounters: 1e7,     // number of keys to track frequency of (10M)
		MaxCost:     1 << 30, // maximum cost of cache (1GB)
		BufferItems: 64,      // number of keys per Get buffer
	})
	if err != nil {
		return nil, err
	}

	return &Cache[K, V]{cache: c}, nil
}
