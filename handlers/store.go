// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/shell"
	"github.com/danielhkuo/meeting-intel/tabs"
	"github.com/danielhkuo/meeting-intel/upload"
)

var errSessionNotFound = errors.New("session not found")

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// uiState is one ui_session row
type uiState struct {
	Shell shell.State
	Tabs  tabs.State
}

// recordingRow is one recording_session row
type recordingRow struct {
	State recording.State
	Quota recording.Quota
}

func insertSession(ctx context.Context, q querier, id string, trialTotal time.Duration, now time.Time) error {
	ui := uiState{Shell: shell.New(), Tabs: tabs.New()}

	_, err := q.ExecContext(ctx, `
		INSERT INTO ui_session (id, view, return_view, active_tab, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, id, string(ui.Shell.View), string(ui.Shell.ReturnView), string(ui.Tabs.Active), now)
	if err != nil {
		return fmt.Errorf("inserting ui session: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO recording_session (session_id, consent, trial_total_ms)
		VALUES ($1, $2, $3)
	`, id, string(recording.ConsentUnset), trialTotal.Milliseconds())
	if err != nil {
		return fmt.Errorf("inserting recording session: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO upload_intake (session_id) VALUES ($1)
	`, id)
	if err != nil {
		return fmt.Errorf("inserting upload intake: %w", err)
	}

	return nil
}

func loadUI(ctx context.Context, q querier, id string) (uiState, error) {
	var s uiState
	var view, returnView, item, tab string

	err := q.QueryRowContext(ctx, `
		SELECT view, return_view, menu_open,
		       drag_active, drag_start_y, drag_current_y,
		       swipe_active, swipe_start_y, last_menu_item,
		       active_tab, scroll_y, show_back_to_top
		FROM ui_session
		WHERE id = $1
	`, id).Scan(
		&view, &returnView, &s.Shell.MenuOpen,
		&s.Shell.Drag.Active, &s.Shell.Drag.StartY, &s.Shell.Drag.CurrentY,
		&s.Shell.Swipe.Active, &s.Shell.Swipe.StartY, &item,
		&tab, &s.Tabs.ScrollY, &s.Tabs.ShowBackToTop,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return uiState{}, errSessionNotFound
	}
	if err != nil {
		return uiState{}, fmt.Errorf("loading ui session: %w", err)
	}

	s.Shell.View = shell.ParseView(view)
	s.Shell.ReturnView = shell.ParseView(returnView)
	s.Shell.LastMenuItem = shell.MenuItem(item)
	s.Tabs.Active = tabs.Tab(tab)
	if _, err := tabs.ParseTab(tab); err != nil {
		s.Tabs.Active = tabs.TabTranscript
	}

	return s, nil
}

func saveUI(ctx context.Context, q querier, id string, s uiState, now time.Time) error {
	_, err := q.ExecContext(ctx, `
		UPDATE ui_session
		SET view = $2, return_view = $3, menu_open = $4,
		    drag_active = $5, drag_start_y = $6, drag_current_y = $7,
		    swipe_active = $8, swipe_start_y = $9, last_menu_item = $10,
		    active_tab = $11, scroll_y = $12, show_back_to_top = $13,
		    updated_at = $14
		WHERE id = $1
	`, id, string(s.Shell.View), string(s.Shell.ReturnView), s.Shell.MenuOpen,
		s.Shell.Drag.Active, s.Shell.Drag.StartY, s.Shell.Drag.CurrentY,
		s.Shell.Swipe.Active, s.Shell.Swipe.StartY, string(s.Shell.LastMenuItem),
		string(s.Tabs.Active), s.Tabs.ScrollY, s.Tabs.ShowBackToTop,
		now)
	if err != nil {
		return fmt.Errorf("saving ui session: %w", err)
	}
	return nil
}

func loadRecording(ctx context.Context, q querier, id string) (recordingRow, error) {
	var row recordingRow
	var consent string
	var startedAt, resumedAt sql.NullTime
	var accumulated, total, used int64

	err := q.QueryRowContext(ctx, `
		SELECT consent, recording, paused, started_at, resumed_at,
		       accumulated_ms, failure, trial_total_ms, trial_used_ms
		FROM recording_session
		WHERE session_id = $1
	`, id).Scan(
		&consent, &row.State.Recording, &row.State.Paused, &startedAt, &resumedAt,
		&accumulated, &row.State.Failure, &total, &used,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return recordingRow{}, errSessionNotFound
	}
	if err != nil {
		return recordingRow{}, fmt.Errorf("loading recording session: %w", err)
	}

	row.State.Consent = recording.Consent(consent)
	row.State.StartedAt = startedAt.Time
	row.State.ResumedAt = resumedAt.Time
	row.State.Accumulated = time.Duration(accumulated) * time.Millisecond
	row.Quota = recording.Quota{
		Total: time.Duration(total) * time.Millisecond,
		Used:  time.Duration(used) * time.Millisecond,
	}

	return row, nil
}

func saveRecording(ctx context.Context, q querier, id string, row recordingRow) error {
	s := row.State
	_, err := q.ExecContext(ctx, `
		UPDATE recording_session
		SET consent = $2, recording = $3, paused = $4,
		    started_at = $5, resumed_at = $6, accumulated_ms = $7,
		    failure = $8, trial_used_ms = $9
		WHERE session_id = $1
	`, id, string(s.Consent), s.Recording, s.Paused,
		nullTime(s.StartedAt), nullTime(s.ResumedAt), s.Accumulated.Milliseconds(),
		s.Failure, row.Quota.Used.Milliseconds())
	if err != nil {
		return fmt.Errorf("saving recording session: %w", err)
	}
	return nil
}

func loadUpload(ctx context.Context, q querier, id string) (upload.Intake, error) {
	var in upload.Intake
	var fileID, name, ctype, path, source sql.NullString
	var size sql.NullInt64
	var selectedAt, submittedAt sql.NullTime

	err := q.QueryRowContext(ctx, `
		SELECT file_id, file_name, file_size, content_type, stored_path,
		       source, selected_at, drop_active, submitted_at
		FROM upload_intake
		WHERE session_id = $1
	`, id).Scan(
		&fileID, &name, &size, &ctype, &path,
		&source, &selectedAt, &in.DropActive, &submittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return upload.Intake{}, errSessionNotFound
	}
	if err != nil {
		return upload.Intake{}, fmt.Errorf("loading upload intake: %w", err)
	}

	if fileID.Valid {
		in.File = &upload.FileRef{
			ID:          fileID.String,
			Name:        name.String,
			Size:        size.Int64,
			ContentType: ctype.String,
			StoredPath:  path.String,
			Source:      upload.ParseSource(source.String),
			SelectedAt:  selectedAt.Time,
		}
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		in.SubmittedAt = &t
	}

	return in, nil
}

func saveUpload(ctx context.Context, q querier, id string, in upload.Intake) error {
	var fileID, name, ctype, path, source any
	var size, selectedAt, submittedAt any
	if f := in.File; f != nil {
		fileID, name, ctype, path, source = f.ID, f.Name, f.ContentType, f.StoredPath, string(f.Source)
		size, selectedAt = f.Size, f.SelectedAt
	}
	if in.SubmittedAt != nil {
		submittedAt = *in.SubmittedAt
	}

	_, err := q.ExecContext(ctx, `
		UPDATE upload_intake
		SET file_id = $2, file_name = $3, file_size = $4, content_type = $5,
		    stored_path = $6, source = $7, selected_at = $8,
		    drop_active = $9, submitted_at = $10
		WHERE session_id = $1
	`, id, fileID, name, size, ctype, path, source, selectedAt, in.DropActive, submittedAt)
	if err != nil {
		return fmt.Errorf("saving upload intake: %w", err)
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
