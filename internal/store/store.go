// Package store keeps the bounded, ordered channel log.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/beachleague/channel/internal/logger"
	"github.com/beachleague/channel/internal/message"
)

// DefaultLimit is the number of entries retained after an append.
const DefaultLimit = 50

var (
	// ErrNotFound is returned by a Backend that has never been written.
	ErrNotFound = errors.New("message log not found")
	// ErrCorrupt is returned by a Backend whose content cannot be decoded.
	ErrCorrupt = errors.New("message log corrupt")
)

// Store is the channel log as seen by the request handlers.
type Store interface {
	// ReadAll returns the log, always starting with the welcome message.
	ReadAll(ctx context.Context) ([]message.Message, error)
	// Append persists msgs, the complete desired log, keeping only its tail.
	Append(ctx context.Context, msgs []message.Message) error
}

// Backend loads and saves the whole log. Save fully replaces prior content.
type Backend interface {
	Load(ctx context.Context) ([]message.Message, error)
	Save(ctx context.Context, msgs []message.Message) error
}

// Error is a storage failure surfaced to callers.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Log implements Store on top of a Backend.
type Log struct {
	backend Backend
	welcome string
	limit   int
	logger  *slog.Logger
}

// NewLog creates a Log. A non-positive limit falls back to DefaultLimit.
func NewLog(log *slog.Logger, backend Backend, welcome string, limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{
		backend: backend,
		welcome: welcome,
		limit:   limit,
		logger:  logger.OrDefault(log).With(slog.String("service", "store")),
	}
}

// ReadAll loads the log. Missing or undecodable content yields only the
// welcome message; the welcome message is prepended when the stored log does
// not already start with it.
func (l *Log) ReadAll(ctx context.Context) ([]message.Message, error) {
	msgs, err := l.backend.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		return []message.Message{message.Welcome(l.welcome)}, nil
	case errors.Is(err, ErrCorrupt):
		l.logger.Warn("message log unreadable, starting empty", slog.Any("error", err))
		msgs = nil
	case err != nil:
		return nil, &Error{Op: "read", Err: err}
	}

	if len(msgs) == 0 || !msgs[0].IsWelcome(l.welcome) {
		out := make([]message.Message, 0, len(msgs)+1)
		out = append(out, message.Welcome(l.welcome))
		return append(out, msgs...), nil
	}
	return msgs, nil
}

// Append keeps the last Limit entries of msgs and saves them. The welcome
// message may be evicted here; ReadAll puts it back on the next read.
func (l *Log) Append(ctx context.Context, msgs []message.Message) error {
	kept := Truncate(msgs, l.limit)
	if err := l.backend.Save(ctx, kept); err != nil {
		return &Error{Op: "write", Err: err}
	}
	l.logger.Debug("message log saved", slog.Int("count", len(kept)))
	return nil
}

// Limit returns the retention bound.
func (l *Log) Limit() int {
	return l.limit
}

// Truncate returns a copy of the last n entries of msgs.
func Truncate(msgs []message.Message, n int) []message.Message {
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]message.Message, len(msgs))
	copy(out, msgs)
	return out
}
