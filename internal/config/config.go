// Package config loads and exposes channel configuration (TOML).
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":8080"
	DefaultChannelName    = "BeachLeague Chat"
	DefaultChannelTopic   = "Beach Volleyball"
	DefaultWelcomeMessage = "Welcome to BeachLeague Chat! Talk about beach volleyball, tournaments, and tips."
	DefaultTypeOfService  = "aiweb24:chat"
	DefaultHistoryLimit   = 50
	DefaultStorageDriver  = "file"
	DefaultMessagesFile   = "messages.json"
	DefaultSQLitePath     = "messages.db"
	DefaultHubTimeout     = 10
	DefaultPGHost         = "127.0.0.1"
	DefaultPGPort         = 5432
	DefaultPGUser         = "postgres"
	DefaultPGDatabase     = "channel"
	DefaultPGSSLMode      = "disable"
)

// Storage drivers accepted in [storage].driver.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root channel configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Channel  ChannelConfig  `toml:"channel"`
	Storage  StorageConfig  `toml:"storage"`
	Postgres PostgresConfig `toml:"postgres"`
	Hub      HubConfig      `toml:"hub"`
	Filter   FilterConfig   `toml:"filter"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP listen address and an optional per-client
// request rate (requests per second, 0 disables limiting).
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	RateLimit float64 `toml:"rate_limit"`
}

// ChannelConfig describes the channel as announced to the hub.
type ChannelConfig struct {
	Name           string `toml:"name"`
	Topic          string `toml:"topic"`
	WelcomeMessage string `toml:"welcome_message"`
	AuthKey        string `toml:"authkey"`
	Endpoint       string `toml:"endpoint"`
	TypeOfService  string `toml:"type_of_service"`
	HistoryLimit   int    `toml:"history_limit"`
}

// StorageConfig selects the message log backend.
type StorageConfig struct {
	Driver     string `toml:"driver"`
	Path       string `toml:"path"`
	SQLitePath string `toml:"sqlite_path"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

// HubConfig holds the directory hub location and its credential.
type HubConfig struct {
	URL            string `toml:"url"`
	AuthKey        string `toml:"authkey"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// FilterConfig extends the built-in profanity dictionary.
type FilterConfig struct {
	ExtraWords []string `toml:"extra_words"`
	WordsFile  string   `toml:"words_file"`
}

// Addr returns host:port for the Postgres server.
func (c PostgresConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Channel: ChannelConfig{
			Name:           DefaultChannelName,
			Topic:          DefaultChannelTopic,
			WelcomeMessage: DefaultWelcomeMessage,
			TypeOfService:  DefaultTypeOfService,
			HistoryLimit:   DefaultHistoryLimit,
		},
		Storage: StorageConfig{
			Driver:     DefaultStorageDriver,
			Path:       DefaultMessagesFile,
			SQLitePath: DefaultSQLitePath,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Hub: HubConfig{
			TimeoutSeconds: DefaultHubTimeout,
		},
	}
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
