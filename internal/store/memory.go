package store

import (
	"context"
	"sync"

	"github.com/beachleague/channel/internal/message"
)

// MemoryBackend keeps the log in process memory.
type MemoryBackend struct {
	mu     sync.Mutex
	msgs   []message.Message
	saved  bool
	saves  int
	failOn error
}

// NewMemoryBackend returns an empty, never-saved backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns ErrNotFound until the first Save.
func (b *MemoryBackend) Load(context.Context) ([]message.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.saved {
		return nil, ErrNotFound
	}
	out := make([]message.Message, len(b.msgs))
	copy(out, b.msgs)
	return out, nil
}

// Save replaces the stored log.
func (b *MemoryBackend) Save(_ context.Context, msgs []message.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failOn != nil {
		return b.failOn
	}
	b.msgs = make([]message.Message, len(msgs))
	copy(b.msgs, msgs)
	b.saved = true
	b.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// FailSaves makes every later Save return err (nil restores normal saves).
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failOn = err
}
