package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/beachleague/channel/internal/logger"
	"github.com/beachleague/channel/internal/message"
)

//go:embed schema.sql
var sqliteSchema string

// SQLiteBackend stores the log in an embedded SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the schema.
func OpenSQLite(log *slog.Logger, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	logger.OrDefault(log).Info("sqlite message log opened", slog.String("path", path))
	return &SQLiteBackend{db: db}, nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load returns ErrNotFound until the first Save.
func (b *SQLiteBackend) Load(ctx context.Context) ([]message.Message, error) {
	var savedAt string
	err := b.db.QueryRowContext(ctx, `SELECT saved_at FROM log_state WHERE id = 1`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query log state: %w", err)
	}

	rows, err := b.db.QueryContext(ctx, `SELECT content, sender, timestamp, extra FROM messages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []message.Message
	for rows.Next() {
		var (
			m     message.Message
			extra sql.NullString
		)
		if err := rows.Scan(&m.Content, &m.Sender, &m.Timestamp, &extra); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if extra.Valid {
			if err := json.Unmarshal([]byte(extra.String), &m.Extra); err != nil {
				return nil, fmt.Errorf("%w: extra: %v", ErrCorrupt, err)
			}
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Save replaces all rows in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, msgs []message.Message) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO messages (position, content, sender, timestamp, extra) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range msgs {
		extra, err := encodeExtra(m.Extra)
		if err != nil {
			return err
		}
		var extraArg any
		if extra != nil {
			extraArg = string(extra)
		}
		if _, err := stmt.ExecContext(ctx, i, m.Content, m.Sender, m.Timestamp, extraArg); err != nil {
			return fmt.Errorf("insert message %d: %w", i, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO log_state (id, saved_at) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`,
		time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("update log state: %w", err)
	}
	return tx.Commit()
}

// encodeExtra returns nil for a nil value so it is stored as SQL NULL.
func encodeExtra(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode extra: %w", err)
	}
	return data, nil
}
