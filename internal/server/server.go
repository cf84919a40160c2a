// Package server provides the HTTP server and Echo setup for the channel API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/beachleague/channel/internal/auth"
)

// Server is the HTTP server (Echo) with authkey middleware and registered handlers.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

// Handler registers routes on the Echo instance.
type Handler interface {
	Register(e *echo.Echo)
}

// Options configures NewServer.
type Options struct {
	Addr    string
	AuthKey string
	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64
	// BodyLimit caps request bodies (echo size syntax, e.g. "1M").
	BodyLimit string
}

// NewServer builds the Echo server with recovery, request IDs, request
// logging, authkey checks on every route and the given handlers.
func NewServer(log *slog.Logger, opts Options, handlers ...Handler) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.BodyLimit == "" {
		opts.BodyLimit = "1M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = plainTextErrorHandler(log)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", c.RealIP()),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	// authkey precedes the limiters: unauthorized requests always get 400.
	e.Use(auth.KeyMiddleware(opts.AuthKey, nil))
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(opts.RateLimit),
			Burst: int(math.Max(1, math.Ceil(opts.RateLimit))),
		})))
	}
	e.Use(middleware.BodyLimit(opts.BodyLimit))

	for _, h := range handlers {
		if h != nil {
			h.Register(e)
		}
	}

	return &Server{
		echo:   e,
		addr:   opts.Addr,
		logger: log.With(slog.String("component", "server")),
	}
}

// ServeHTTP lets the server be driven directly, e.g. from httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server (blocks until shutdown).
func (s *Server) Start() error {
	s.logger.Info("listening", slog.String("addr", s.addr))
	return s.echo.Start(s.addr)
}

// Stop gracefully shuts down the server using the given context.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// plainTextErrorHandler writes error reasons as text/plain bodies, which is
// what hub clients expect from a channel.
func plainTextErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		text := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			text = fmt.Sprint(he.Message)
		}
		if code >= http.StatusInternalServerError {
			log.Error("request failed", slog.Int("status", code), slog.Any("error", err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.String(code, text)
		}
		if err != nil {
			log.Warn("write error response", slog.Any("error", err))
		}
	}
}
