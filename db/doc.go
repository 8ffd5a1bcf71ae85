// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages the schema.

# Drivers

Open selects the driver from the configured database type:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, no cgo), limited to one open
    connection with foreign keys enabled

# Schema Overview

All state of one client UI session lives in three tables keyed by the
session id:

	ui_session
	├── recording_session (1:1)
	└── upload_intake     (1:1)

# Tables

ui_session: Navigation shell and tab router
  - id: Session UUID (primary key)
  - view, return_view: Selected view and the view Stop returns to
  - menu_open, drag_*, swipe_*: More menu and gesture tracking
  - last_menu_item: Last activated menu entry
  - active_tab, scroll_y, show_back_to_top: Meeting intelligence tabs

recording_session: Recording controller
  - consent: unset, granted, or denied
  - recording, paused: Capture flags (paused implies recording)
  - started_at, resumed_at, accumulated_ms: Elapsed time bookkeeping
  - failure: Reported capture failure, empty when none
  - trial_total_ms, trial_used_ms: Trial quota

upload_intake: Upload form
  - file_*: Selected file reference, NULL when empty
  - stored_path: Blob location on disk
  - drop_active: Drop target highlight
  - submitted_at: Set when the upload was submitted

# Usage

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err := db.CreateSchema(conn); err != nil {
	    log.Fatal(err)
	}

CreateSchema uses IF NOT EXISTS and CURRENT_TIMESTAMP defaults, so it runs
unchanged on both drivers and is safe to call on every startup.
*/
package db
