// Package transcript persists conversation turns so a support session can be
// reviewed after the fact. Both sides of every exchange are stored: the
// sanitized user message and the final assistant reply.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Roles recorded in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is a single recorded turn side.
type Entry struct {
	SessionID string
	UserID    string
	Role      string
	Intent    string
	Guardrail string
	Content   string
	CreatedAt time.Time
}

// Writer persists transcript entries.
type Writer interface {
	Write(ctx context.Context, entry Entry) error
}

// NoopWriter ignores all transcript writes.
type NoopWriter struct{}

func (NoopWriter) Write(_ context.Context, _ Entry) error { return nil }

// SQLWriter persists entries to SQLite/Postgres.
type SQLWriter struct {
	db      *sql.DB
	dialect string
}

// NewSQLiteWriter opens (or creates) a SQLite transcript database at dsn.
// An empty dsn defaults to careline-transcripts.db in the working directory.
func NewSQLiteWriter(dsn string) (*SQLWriter, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = "careline-transcripts.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite transcript writer: %w", err)
	}
	w := &SQLWriter{db: db, dialect: "sqlite"}
	if err := w.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

// NewPostgresWriter connects to the PostgreSQL transcript database at dsn.
func NewPostgresWriter(dsn string) (*SQLWriter, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres transcript writer: %w", err)
	}
	w := &SQLWriter{db: db, dialect: "postgres"}
	if err := w.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLWriter) init() error {
	if err := w.db.Ping(); err != nil {
		return fmt.Errorf("ping %s transcript writer: %w", w.dialect, err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS transcripts (
	id INTEGER PRIMARY KEY,
	session_id TEXT NOT NULL,
	user_id TEXT,
	role TEXT NOT NULL,
	intent TEXT,
	guardrail TEXT,
	content TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);`

	if w.dialect == "postgres" {
		ddl = `
CREATE TABLE IF NOT EXISTS transcripts (
	id BIGSERIAL PRIMARY KEY,
	session_id TEXT NOT NULL,
	user_id TEXT,
	role TEXT NOT NULL,
	intent TEXT,
	guardrail TEXT,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`
	}

	if _, err := w.db.Exec(ddl); err != nil {
		return fmt.Errorf("initialize transcript schema: %w", err)
	}
	return nil
}

// Write inserts one transcript entry, stamping CreatedAt when unset.
func (w *SQLWriter) Write(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO transcripts(session_id, user_id, role, intent, guardrail, content, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?)`
	if w.dialect == "postgres" {
		query = `INSERT INTO transcripts(session_id, user_id, role, intent, guardrail, content, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)`
	}

	_, err := w.db.ExecContext(ctx, query,
		entry.SessionID,
		entry.UserID,
		entry.Role,
		entry.Intent,
		entry.Guardrail,
		entry.Content,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Recent returns up to limit entries for a session, oldest first.
func (w *SQLWriter) Recent(ctx context.Context, sessionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT session_id, user_id, role, intent, guardrail, content, created_at
	FROM transcripts WHERE session_id = ? ORDER BY id DESC LIMIT ?`
	if w.dialect == "postgres" {
		query = `SELECT session_id, user_id, role, intent, guardrail, content, created_at
		FROM transcripts WHERE session_id = $1 ORDER BY id DESC LIMIT $2`
	}

	rows, err := w.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SessionID, &e.UserID, &e.Role, &e.Intent, &e.Guardrail, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcript rows: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Close releases the underlying database handle.
func (w *SQLWriter) Close() error {
	if w == nil || w.db == nil {
		return nil
	}
	return w.db.Close()
}
