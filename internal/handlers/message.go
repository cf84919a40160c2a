package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beachleague/channel/internal/channel"
	"github.com/beachleague/channel/internal/store"
)

// MessageHandler serves the channel log.
type MessageHandler struct {
	service *channel.Service
	logger  *slog.Logger
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(log *slog.Logger, service *channel.Service) *MessageHandler {
	return &MessageHandler{
		service: service,
		logger:  log.With(slog.String("handler", "message")),
	}
}

// Register mounts the log routes on the channel root.
func (h *MessageHandler) Register(e *echo.Echo) {
	e.GET("/", h.ListMessages)
	e.POST("/", h.PostMessage)
}

// ListMessages godoc
// @Summary List messages
// @Description Returns the channel log, oldest first, starting with the welcome message
// @Tags channel
// @Success 200 {array} message.Message
// @Failure 400 {string} string "Invalid authorization"
// @Failure 500 {string} string
// @Router / [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	msgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return h.storageError(err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// PostMessage godoc
// @Summary Post a message
// @Description Stores the message and a BeachBot reply. Blocked messages return 200 but are not stored.
// @Tags channel
// @Param payload body message.Message true "Message"
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "No message, No content, No sender, No timestamp or Invalid authorization"
// @Failure 500 {string} string
// @Router / [post]
func (h *MessageHandler) PostMessage(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No message").SetInternal(err)
	}
	msg, err := channel.DecodePost(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Post(c.Request().Context(), msg)
	if err != nil {
		return h.storageError(err)
	}
	if res.Blocked {
		return c.String(http.StatusOK, channel.TextBlocked)
	}
	return c.String(http.StatusOK, channel.TextOK)
}

func (h *MessageHandler) storageError(err error) error {
	h.logger.Error("message log unavailable", slog.Any("error", err))
	var serr *store.Error
	if errors.As(err, &serr) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Storage "+serr.Op+" failed").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Storage unavailable").SetInternal(err)
}
