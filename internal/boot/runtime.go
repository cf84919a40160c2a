// Package boot provides runtime configuration for the channel process.
package boot

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/beachleague/channel/internal/config"
)

// RuntimeConfig holds validated runtime settings derived from config.Config.
// Values may be overridden by environment variables (HTTP_ADDR, CHANNEL_AUTHKEY,
// HUB_AUTHKEY, CHANNEL_FILE).
type RuntimeConfig struct {
	ServerAddr    string
	AuthKey       string
	HubAuthKey    string
	HubTimeout    time.Duration
	StorageDriver string
	MessagesFile  string
	HistoryLimit  int
}

// ProvideRuntimeConfig builds RuntimeConfig from the given config and applies env overrides.
func ProvideRuntimeConfig(cfg config.Config) (*RuntimeConfig, error) {
	ret := &RuntimeConfig{
		ServerAddr:    cfg.Server.Addr,
		AuthKey:       cfg.Channel.AuthKey,
		HubAuthKey:    cfg.Hub.AuthKey,
		HubTimeout:    time.Duration(cfg.Hub.TimeoutSeconds) * time.Second,
		StorageDriver: strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)),
		MessagesFile:  cfg.Storage.Path,
		HistoryLimit:  cfg.Channel.HistoryLimit,
	}

	if value := os.Getenv("HTTP_ADDR"); value != "" {
		ret.ServerAddr = value
	}
	if value := os.Getenv("CHANNEL_AUTHKEY"); value != "" {
		ret.AuthKey = value
	}
	if value := os.Getenv("HUB_AUTHKEY"); value != "" {
		ret.HubAuthKey = value
	}
	if value := os.Getenv("CHANNEL_FILE"); value != "" {
		ret.MessagesFile = value
	}

	if strings.TrimSpace(ret.AuthKey) == "" {
		return nil, errors.New("channel authkey is required")
	}
	switch ret.StorageDriver {
	case config.DriverFile, config.DriverSQLite, config.DriverPostgres:
	case "":
		ret.StorageDriver = config.DefaultStorageDriver
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", ret.StorageDriver)
	}
	if ret.HistoryLimit <= 0 {
		ret.HistoryLimit = config.DefaultHistoryLimit
	}
	if ret.HubTimeout <= 0 {
		ret.HubTimeout = config.DefaultHubTimeout * time.Second
	}
	return ret, nil
}
