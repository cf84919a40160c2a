package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/beachleague/channel/internal/config"
	"github.com/beachleague/channel/internal/logger"
)

// MigrateStep is one schema operation on the message log tables.
type MigrateStep struct {
	Command string
	// Version is the target of "force".
	Version int
}

var migrateSteps = map[string]func(*migrate.Migrate, MigrateStep, *slog.Logger) error{
	"up":      migrateUp,
	"down":    migrateDown,
	"version": migrateVersion,
	"force":   migrateForce,
}

// ParseMigrateStep validates a CLI-style command ("up", "down", "version",
// "force N").
func ParseMigrateStep(command string, args []string) (MigrateStep, error) {
	if _, ok := migrateSteps[command]; !ok {
		return MigrateStep{}, fmt.Errorf("unknown migrate command: %s (use: up, down, version, force)", command)
	}
	step := MigrateStep{Command: command}
	if command != "force" {
		return step, nil
	}
	if len(args) == 0 {
		return MigrateStep{}, errors.New("force requires a version number argument")
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return MigrateStep{}, fmt.Errorf("invalid version: %w", err)
	}
	step.Version = v
	return step, nil
}

// RunMigrate parses command and args and applies the step against the
// database in cfg. migrationsFS holds the .sql files at its root.
func RunMigrate(log *slog.Logger, cfg config.PostgresConfig, migrationsFS fs.FS, command string, args []string) error {
	step, err := ParseMigrateStep(command, args)
	if err != nil {
		return err
	}
	return Migrate(log, cfg, migrationsFS, step)
}

// Migrate applies step.
func Migrate(log *slog.Logger, cfg config.PostgresConfig, migrationsFS fs.FS, step MigrateStep) error {
	run, ok := migrateSteps[step.Command]
	if !ok {
		return fmt.Errorf("unknown migrate command: %s", step.Command)
	}
	log = logger.OrDefault(log).With(slog.String("component", "migrate"))

	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DSN(cfg))
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()
	m.Log = slogMigrateLogger{log: log}

	if err := run(m, step, log); err != nil {
		return fmt.Errorf("migrate %s: %w", step.Command, err)
	}
	return nil
}

func migrateUp(m *migrate.Migrate, _ MigrateStep, log *slog.Logger) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return logVersion(m, log, "message log schema up to date")
}

func migrateDown(m *migrate.Migrate, _ MigrateStep, log *slog.Logger) error {
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Info("message log schema removed")
	return nil
}

func migrateVersion(m *migrate.Migrate, _ MigrateStep, log *slog.Logger) error {
	return logVersion(m, log, "message log schema version")
}

func migrateForce(m *migrate.Migrate, step MigrateStep, log *slog.Logger) error {
	if err := m.Force(step.Version); err != nil {
		return err
	}
	log.Warn("schema version forced", slog.Int("version", step.Version))
	return nil
}

func logVersion(m *migrate.Migrate, log *slog.Logger, msg string) error {
	ver, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info(msg, slog.String("version", "none"))
		return nil
	}
	if err != nil {
		return err
	}
	log.Info(msg, slog.Uint64("version", uint64(ver)), slog.Bool("dirty", dirty))
	return nil
}

// slogMigrateLogger routes golang-migrate output to slog at debug level.
type slogMigrateLogger struct {
	log *slog.Logger
}

func (l slogMigrateLogger) Printf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...))
}

func (l slogMigrateLogger) Verbose() bool {
	return l.log.Enabled(context.Background(), slog.LevelDebug)
}
