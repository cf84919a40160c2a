package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/beachleague/channel/internal/message"
)

func openTestSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	b, err := OpenSQLite(nil, filepath.Join(t.TempDir(), "messages.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSQLiteBackendMissing(t *testing.T) {
	if _, err := openTestSQLite(t).Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteBackendSaveLoad(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		saves [][]message.Message
	}{
		{
			name: "round trip",
			saves: [][]message.Message{{
				message.Welcome(testWelcome),
				{Content: "hi", Sender: "A", Timestamp: "T", Extra: map[string]any{"n": float64(3)}},
				message.Reply("Alright! 🌴", "T"),
			}},
		},
		{name: "overwrite", saves: [][]message.Message{numbered(4), numbered(1)}},
		{name: "empty", saves: [][]message.Message{nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := openTestSQLite(t)
			for _, msgs := range tt.saves {
				if err := b.Save(ctx, msgs); err != nil {
					t.Fatalf("save: %v", err)
				}
			}
			loaded, err := b.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			want := tt.saves[len(tt.saves)-1]
			if len(want) == 0 {
				if len(loaded) != 0 {
					t.Fatalf("expected empty log, got %+v", loaded)
				}
				return
			}
			equalMessages(t, want, loaded)
		})
	}
}
