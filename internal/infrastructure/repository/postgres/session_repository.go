// Package postgres provides the Postgres-backed conversation-context store,
// for deployments where follow-up context must survive process restarts or
// be shared across replicas.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS chat_session_context (
    session_id  TEXT PRIMARY KEY,
    last_answer TEXT NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("ensure session schema: %w", err)
	}
	return nil
}

func (r *SessionRepository) LastAnswer(ctx context.Context, sessionID string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT last_answer
FROM chat_session_context
WHERE session_id = $1
`, sessionID)

	var answer string
	if err := row.Scan(&answer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select session context: %w", err)
	}
	return answer, true, nil
}

func (r *SessionRepository) RememberAnswer(ctx context.Context, sessionID, answer string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO chat_session_context (session_id, last_answer, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (session_id) DO UPDATE
SET last_answer = EXCLUDED.last_answer, updated_at = EXCLUDED.updated_at
`, sessionID, answer, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert session context: %w", err)
	}
	return nil
}
