package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	dbembed "github.com/beachleague/channel/db"
	"github.com/beachleague/channel/internal/config"
	"github.com/beachleague/channel/internal/db"
	"github.com/beachleague/channel/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down|version|force N",
	Short:     "Manage the Postgres message log schema",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down", "version", "force"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Init(cfg.Log.Level, cfg.Log.Format)

		migrations, err := fs.Sub(dbembed.MigrationsFS, "migrations")
		if err != nil {
			return err
		}
		return db.RunMigrate(log, cfg.Postgres, migrations, args[0], args[1:])
	},
}
