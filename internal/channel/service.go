// Package channel implements the message-store-and-respond pipeline of a chat channel.
package channel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/beachleague/channel/internal/filter"
	"github.com/beachleague/channel/internal/logger"
	"github.com/beachleague/channel/internal/message"
	"github.com/beachleague/channel/internal/responder"
	"github.com/beachleague/channel/internal/store"
)

// Service validates, filters, answers and stores posted messages.
type Service struct {
	info      Info
	store     store.Store
	filter    filter.Filter
	responder responder.Responder
	logger    *slog.Logger

	// mu serializes the read-modify-write of Post within this process.
	mu sync.Mutex
}

// NewService creates a Service. A nil filter accepts everything; a nil
// responder never replies.
func NewService(log *slog.Logger, info Info, st store.Store, f filter.Filter, r responder.Responder) *Service {
	if f == nil {
		f = filter.AllowAll{}
	}
	return &Service{
		info:      info,
		store:     st,
		filter:    f,
		responder: r,
		logger:    logger.OrDefault(log).With(slog.String("service", "channel")),
	}
}

// Health returns the channel name.
func (s *Service) Health() HealthResponse {
	return HealthResponse{Name: s.info.Name}
}

// Info returns the channel description.
func (s *Service) Info() Info {
	return s.info
}

// List returns the current log.
func (s *Service) List(ctx context.Context) ([]message.Message, error) {
	return s.store.ReadAll(ctx)
}

// Post stores m followed by the bot reply, unless the filter blocks it.
func (s *Service) Post(ctx context.Context, m message.Message) (PostResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.store.ReadAll(ctx)
	if err != nil {
		return PostResult{}, err
	}

	if !s.filter.IsAllowed(m.Content) {
		s.logger.Info("message blocked", slog.String("sender", m.Sender))
		return PostResult{Blocked: true}, nil
	}
	msgs = append(msgs, m)

	var reply string
	if s.responder != nil {
		if text, ok := s.responder.Generate(m.Content); ok && text != "" {
			reply = text
			msgs = append(msgs, message.Reply(text, m.Timestamp))
		}
	}

	if err := s.store.Append(ctx, msgs); err != nil {
		return PostResult{}, err
	}
	s.logger.Debug("message stored",
		slog.String("sender", m.Sender),
		slog.Bool("replied", reply != ""),
	)
	return PostResult{Reply: reply}, nil
}
