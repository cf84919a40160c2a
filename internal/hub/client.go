// Package hub registers the channel with the directory hub.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/beachleague/channel/internal/auth"
	"github.com/beachleague/channel/internal/logger"
)

// Registration is the body of POST {hub}/channels.
type Registration struct {
	Name          string `json:"name"`
	Endpoint      string `json:"endpoint"`
	AuthKey       string `json:"authkey"`
	TypeOfService string `json:"type_of_service"`
}

// StatusError is returned when the hub answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hub returned %d: %s", e.Code, e.Body)
}

// Client talks to one hub.
type Client struct {
	baseURL string
	authKey string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a hub client. A zero timeout means no client timeout.
func NewClient(log *slog.Logger, baseURL, authKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		authKey: authKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.OrDefault(log).With(slog.String("component", "hub")),
	}
}

// Register announces the channel to the hub.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if c.baseURL == "" {
		return fmt.Errorf("hub url is required")
	}
	payload, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/channels", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth.Header(c.authKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("register channel: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	c.logger.Info("channel registered",
		slog.String("name", reg.Name),
		slog.String("endpoint", reg.Endpoint),
		slog.String("hub", c.baseURL),
	)
	return nil
}
