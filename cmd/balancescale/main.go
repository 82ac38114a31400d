package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/caasmo/balancescale"
	"github.com/caasmo/balancescale/config"
	"github.com/caasmo/balancescale/core"
	"github.com/caasmo/balancescale/db/zombiezen"
	"github.com/caasmo/balancescale/migrations"
	phuslog "github.com/phuslu/log"
)

func main() {
	configPath := flag.String("config", "", "path to TOML configuration file (defaults apply when empty)")
	dbPath := flag.String("db", "", "path to the SQLite database file (overrides configuration)")
	flag.Parse()

	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, balancescale.DefaultLoggerOptions))

	cfg := config.NewDefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFromToml(*configPath, logger)
		if err != nil {
			logger.Error("failed to load configuration", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.DBFile = *dbPath
	}

	pool, err := balancescale.NewZombiezenPool(cfg.DBFile)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBFile, "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrate(pool); err != nil {
		logger.Error("failed to apply migrations", "path", cfg.DBFile, "error", err)
		os.Exit(1)
	}

	_, srv := balancescale.New(cfg,
		balancescale.WithZombiezenPool(pool),
		balancescale.WithCacheRistretto(),
		core.WithLogger(logger),
	)

	srv.Run()
}

// migrate brings the schema up to date. The migration scripts are
// idempotent, so running them on every start is safe.
func migrate(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	return zombiezen.ApplyMigrations(conn, migrations.Schema())
}
