package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableLLMRequests = "llm_request_events"
	tableTransitions = "transition_events"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE IF NOT EXISTS transition_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence   INTEGER NOT NULL UNIQUE,
		timestamp  INTEGER NOT NULL,
		session_id TEXT    NOT NULL,
		event      TEXT    NOT NULL,
		from_state TEXT    NOT NULL,
		to_state   TEXT    NOT NULL,
		user_id    TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transition_events_session ON transition_events (session_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
