package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/beachleague/channel/internal/boot"
	"github.com/beachleague/channel/internal/channel"
	"github.com/beachleague/channel/internal/config"
	"github.com/beachleague/channel/internal/handlers"
	"github.com/beachleague/channel/internal/server"
	"github.com/beachleague/channel/internal/version"
)

var ServerModule = fx.Module(
	"server",
	fx.Provide(
		provideServerHandler(handlers.NewHealthHandler),
		provideServerHandler(handlers.NewMessageHandler),
		provideServer,
	),
	fx.Invoke(startServer),
)

// ---------------------------------------------------------------------------
// server
// ---------------------------------------------------------------------------

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

type serverParams struct {
	fx.In

	Logger         *slog.Logger
	RuntimeConfig  *boot.RuntimeConfig
	Config         config.Config
	ServerHandlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.NewServer(params.Logger, server.Options{
		Addr:      params.RuntimeConfig.ServerAddr,
		AuthKey:   params.RuntimeConfig.AuthKey,
		RateLimit: params.Config.Server.RateLimit,
	}, params.ServerHandlers...)
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, svc *channel.Service, shutdowner fx.Shutdowner) {
	info := svc.Info()
	logger.Info("starting channel",
		slog.String("name", info.Name),
		slog.String("topic", info.Topic),
		slog.String("version", version.GetInfo()),
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
