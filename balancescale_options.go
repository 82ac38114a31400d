package balancescale

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"

	cacheRistretto "github.com/caasmo/balancescale/cache/ristretto"
	"github.com/caasmo/balancescale/core"
	"github.com/caasmo/balancescale/db/zombiezen"
	phuslog "github.com/phuslu/log"
)

// WithZombiezenPool configures the app to use the zombiezen SQLite
// implementation with an existing pool. The caller owns the pool lifecycle.
func WithZombiezenPool(pool *sqlitex.Pool) core.Option {
	dbInstance, err := zombiezen.New(pool)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize zombiezen DB with existing pool: %v", err))
	}
	return core.WithDbApp(dbInstance)
}

// NewZombiezenPool creates a SQLite connection pool with reasonable defaults
// (WAL mode, URI filenames). Use a single shared pool if your application
// accesses the database alongside this package, to avoid SQLITE_BUSY errors.
func NewZombiezenPool(dbPath string) (*sqlitex.Pool, error) {
	poolSize := runtime.NumCPU()
	initString := fmt.Sprintf("file:%s", dbPath)

	// sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zombiezen pool at %s: %w", dbPath, err)
	}
	return pool, nil
}

// WithCacheRistretto configures the app with a Ristretto cache.
func WithCacheRistretto() core.Option {
	c, err := cacheRistretto.New[string, interface{}]()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize ristretto cache: %v", err))
	}
	return core.WithCache(c)
}

// DefaultLoggerOptions provides default settings for slog handlers.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelDebug,
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Uses DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}
