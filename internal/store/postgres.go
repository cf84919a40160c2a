package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beachleague/channel/internal/message"
)

// PostgresBackend stores the log in the channel_messages table created by
// the migrations in db/migrations.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend returns a backend using pool.
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// Load returns ErrNotFound until the first Save.
func (b *PostgresBackend) Load(ctx context.Context) ([]message.Message, error) {
	var one int
	err := b.pool.QueryRow(ctx, `SELECT 1 FROM channel_log_state WHERE id = 1`).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query log state: %w", err)
	}

	rows, err := b.pool.Query(ctx, `SELECT content, sender, timestamp, extra FROM channel_messages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []message.Message
	for rows.Next() {
		var (
			m     message.Message
			extra []byte
		)
		if err := rows.Scan(&m.Content, &m.Sender, &m.Timestamp, &extra); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if extra != nil {
			if err := json.Unmarshal(extra, &m.Extra); err != nil {
				return nil, fmt.Errorf("%w: extra: %v", ErrCorrupt, err)
			}
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Save replaces all rows in one transaction.
func (b *PostgresBackend) Save(ctx context.Context, msgs []message.Message) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM channel_messages`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}

	rows := make([][]any, 0, len(msgs))
	for i, m := range msgs {
		extra, err := encodeExtra(m.Extra)
		if err != nil {
			return err
		}
		rows = append(rows, []any{int32(i), m.Content, m.Sender, m.Timestamp, extra})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"channel_messages"},
		[]string{"position", "content", "sender", "timestamp", "extra"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return fmt.Errorf("copy messages: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO channel_log_state (id, saved_at) VALUES (1, now())
		 ON CONFLICT (id) DO UPDATE SET saved_at = EXCLUDED.saved_at`,
	); err != nil {
		return fmt.Errorf("update log state: %w", err)
	}
	return tx.Commit(ctx)
}
