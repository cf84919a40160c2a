package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beachleague/channel/internal/channel"
)

// HealthHandler serves GET /health for the hub's liveness probe.
type HealthHandler struct {
	service *channel.Service
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(log *slog.Logger, service *channel.Service) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  log.With(slog.String("handler", "health")),
	}
}

// Register mounts GET /health on the Echo instance.
func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health godoc
// @Summary Channel health
// @Description Returns the channel name
// @Tags channel
// @Success 200 {object} channel.HealthResponse
// @Failure 400 {string} string "Invalid authorization"
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Health())
}
