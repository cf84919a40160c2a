package modules

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/beachleague/channel/internal/boot"
	"github.com/beachleague/channel/internal/channel"
	"github.com/beachleague/channel/internal/config"
	"github.com/beachleague/channel/internal/filter"
	"github.com/beachleague/channel/internal/responder"
	"github.com/beachleague/channel/internal/store"
)

var DomainModule = fx.Module(
	"domain",
	fx.Provide(
		provideStore,
		fx.Annotate(provideFilter, fx.As(new(filter.Filter))),
		fx.Annotate(responder.New, fx.As(new(responder.Responder))),
		provideChannelService,
	),
)

func provideStore(log *slog.Logger, cfg config.Config, rc *boot.RuntimeConfig, backend store.Backend) store.Store {
	return store.NewLog(log, backend, cfg.Channel.WelcomeMessage, rc.HistoryLimit)
}

func provideFilter(log *slog.Logger, cfg config.Config) (*filter.Profanity, error) {
	return filter.NewProfanity(log, filter.Options{
		ExtraWords: cfg.Filter.ExtraWords,
		WordsFile:  cfg.Filter.WordsFile,
	})
}

func provideChannelService(log *slog.Logger, cfg config.Config, st store.Store, f filter.Filter, r responder.Responder) *channel.Service {
	return channel.NewService(log, channel.Info{
		Name:  cfg.Channel.Name,
		Topic: cfg.Channel.Topic,
	}, st, f, r)
}
