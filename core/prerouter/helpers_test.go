package prerouter

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/caasmo/balancescale/cache"
	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/core"
	"github.com/caasmo/balancescale/db/mock"
)

// mapCache is a synchronous cache.Cache for tests. Ristretto admits writes
// asynchronously, which makes block-then-check assertions racy.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]mapEntry
}

type mapEntry struct {
	value     interface{}
	expiresAt time.Time
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]mapEntry)}
}

func (c *mapCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *mapCache) Set(key string, value interface{}, cost int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = mapEntry{value: value}
	return true
}

func (c *mapCache) SetWithTTL(key string, value interface{}, cost int64, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = mapEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return true
}

var _ cache.Cache[string, interface{}] = (*mapCache)(nil)

func newTestApp(t *testing.T, cfg *config.Config, logger *slog.Logger) *core.App {
	t.Helper()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return core.NewApp(
		core.WithDbApp(&mock.Db{}),
		core.WithConfigProvider(config.NewProvider(cfg)),
		core.WithLogger(logger),
		core.WithCache(newMapCache()),
	)
}
