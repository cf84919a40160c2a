package modules

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"go.uber.org/fx"

	dbembed "github.com/beachleague/channel/db"
	"github.com/beachleague/channel/internal/boot"
	"github.com/beachleague/channel/internal/config"
	"github.com/beachleague/channel/internal/db"
	"github.com/beachleague/channel/internal/logger"
	"github.com/beachleague/channel/internal/store"
)

// ConfigPath is the TOML file the application loads.
type ConfigPath string

var InfraModule = fx.Module(
	"infra",
	fx.Provide(
		provideConfig,
		provideLogger,
		boot.ProvideRuntimeConfig,
		provideBackend,
	),
)

// ---------------------------------------------------------------------------
// infrastructure providers
// ---------------------------------------------------------------------------

func provideConfig(path ConfigPath) (config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	return logger.Init(cfg.Log.Level, cfg.Log.Format)
}

func provideBackend(lc fx.Lifecycle, log *slog.Logger, cfg config.Config, rc *boot.RuntimeConfig) (store.Backend, error) {
	switch rc.StorageDriver {
	case config.DriverSQLite:
		backend, err := store.OpenSQLite(log, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return backend.Close()
			},
		})
		return backend, nil

	case config.DriverPostgres:
		migrations, err := fs.Sub(dbembed.MigrationsFS, "migrations")
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(log, cfg.Postgres, migrations, db.MigrateStep{Command: "up"}); err != nil {
			return nil, err
		}
		pool, err := db.Open(context.Background(), cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				pool.Close()
				return nil
			},
		})
		return store.NewPostgresBackend(pool), nil

	default:
		backend := store.NewFileBackend(rc.MessagesFile)
		log.Info("using file message log", slog.String("path", backend.Path()))
		return backend, nil
	}
}
