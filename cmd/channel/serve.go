package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/beachleague/channel/cmd/channel/modules"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the channel HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp(modules.ConfigPath(configPath))
		if err := app.Err(); err != nil {
			return err
		}
		app.Run()
		return nil
	},
}

func newApp(path modules.ConfigPath) *fx.App {
	return fx.New(appOptions(path))
}

func appOptions(path modules.ConfigPath) fx.Option {
	return fx.Options(
		fx.Supply(path),
		modules.InfraModule,
		modules.DomainModule,
		modules.ServerModule,
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	)
}
