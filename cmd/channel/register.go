package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beachleague/channel/internal/boot"
	"github.com/beachleague/channel/internal/config"
	"github.com/beachleague/channel/internal/hub"
	"github.com/beachleague/channel/internal/logger"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the channel with the hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Init(cfg.Log.Level, cfg.Log.Format)

		rc, err := boot.ProvideRuntimeConfig(cfg)
		if err != nil {
			return err
		}
		if strings.TrimSpace(cfg.Channel.Endpoint) == "" {
			return fmt.Errorf("channel endpoint is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), rc.HubTimeout)
		defer cancel()

		client := hub.NewClient(log, cfg.Hub.URL, rc.HubAuthKey, rc.HubTimeout)
		if err := client.Register(ctx, hub.Registration{
			Name:          cfg.Channel.Name,
			Endpoint:      cfg.Channel.Endpoint,
			AuthKey:       rc.AuthKey,
			TypeOfService: cfg.Channel.TypeOfService,
		}); err != nil {
			return fmt.Errorf("error creating channel: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %q at %s\n", cfg.Channel.Name, cfg.Hub.URL)
		return nil
	},
}
