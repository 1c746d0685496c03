package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	_ "modernc.org/sqlite"
)

type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &SQLiteSink{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS transcripts (
		session_id TEXT PRIMARY KEY,
		messages_json TEXT NOT NULL,
		message_count INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transcripts_updated ON transcripts(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Save(ctx context.Context, sessionID string, messages []*schema.Message) error {
	messages = normalize(messages)
	data, err := sonic.MarshalString(messages)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	now := time.Now().Unix()
	query := `
	INSERT INTO transcripts (session_id, messages_json, message_count, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		messages_json = excluded.messages_json,
		message_count = excluded.message_count,
		updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, sessionID, data, len(messages), now, now); err != nil {
		return fmt.Errorf("upsert transcript: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Load(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT messages_json FROM transcripts WHERE session_id = ?`, sessionID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transcript row: %w", err)
	}
	var messages []*schema.Message
	if err := sonic.UnmarshalString(data, &messages); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return messages, nil
}

func (s *SQLiteSink) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id FROM transcripts ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return ids, nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
