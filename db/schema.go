// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to postgres or sqlite. The sqlite handle is limited to one
// connection, so callers must not query through it while a tx is open.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return conn, nil
	case "sqlite":
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	// Run statement by statement; not every driver accepts a batch.
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

const schema = `
-- One row per client UI session
CREATE TABLE IF NOT EXISTS ui_session (
    id TEXT PRIMARY KEY,
    view TEXT NOT NULL DEFAULT 'meeting-intelligence',
    return_view TEXT NOT NULL DEFAULT 'dashboard',
    menu_open BOOLEAN NOT NULL DEFAULT FALSE,
    drag_active BOOLEAN NOT NULL DEFAULT FALSE,
    drag_start_y DOUBLE PRECISION NOT NULL DEFAULT 0,
    drag_current_y DOUBLE PRECISION NOT NULL DEFAULT 0,
    swipe_active BOOLEAN NOT NULL DEFAULT FALSE,
    swipe_start_y DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_menu_item TEXT NOT NULL DEFAULT '',
    active_tab TEXT NOT NULL DEFAULT 'transcript',
    scroll_y DOUBLE PRECISION NOT NULL DEFAULT 0,
    show_back_to_top BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Recording controller and trial usage
CREATE TABLE IF NOT EXISTS recording_session (
    session_id TEXT PRIMARY KEY REFERENCES ui_session(id) ON DELETE CASCADE,
    consent TEXT NOT NULL DEFAULT 'unset' CHECK (consent IN ('unset', 'granted', 'denied')),
    recording BOOLEAN NOT NULL DEFAULT FALSE,
    paused BOOLEAN NOT NULL DEFAULT FALSE,
    started_at TIMESTAMP,
    resumed_at TIMESTAMP,
    accumulated_ms BIGINT NOT NULL DEFAULT 0,
    failure TEXT NOT NULL DEFAULT '',
    trial_total_ms BIGINT NOT NULL,
    trial_used_ms BIGINT NOT NULL DEFAULT 0,
    CHECK (recording OR NOT paused)
);

-- Single-slot upload form
CREATE TABLE IF NOT EXISTS upload_intake (
    session_id TEXT PRIMARY KEY REFERENCES ui_session(id) ON DELETE CASCADE,
    file_id TEXT,
    file_name TEXT,
    file_size BIGINT,
    content_type TEXT,
    stored_path TEXT,
    source TEXT,
    selected_at TIMESTAMP,
    drop_active BOOLEAN NOT NULL DEFAULT FALSE,
    submitted_at TIMESTAMP
);
`
