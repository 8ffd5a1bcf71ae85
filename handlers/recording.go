// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/metrics"
	"github.com/danielhkuo/meeting-intel/middleware"
	"github.com/danielhkuo/meeting-intel/models"
	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/shell"
)

type RecordingHandler struct {
	base
}

func NewRecordingHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *RecordingHandler {
	return &RecordingHandler{base: newBase(db, cfg, m)}
}

// GetRecording handles GET /sessions/{id}/recording
func (h *RecordingHandler) GetRecording(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	row, err := loadRecording(r.Context(), h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RecordingResponse{
		Recording: recording.Render(row.State, row.Quota, h.now()),
	})
}

// OpenRecording handles POST /sessions/{id}/recording/open, the Record
// action of the transcript pane. Back returns to meeting intelligence.
func (h *RecordingHandler) OpenRecording(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	ctx := r.Context()
	ui, err := loadUI(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}
	row, err := loadRecording(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	now := h.now()
	ui.Shell = shell.EnterRecordingFrom(ui.Shell, shell.ViewMeetingIntelligence)
	if err := saveUI(ctx, h.db, sessionID, ui, now); err != nil {
		storageError(w, sessionID, err)
		return
	}

	h.metrics.Transition("shell", "open_recording")

	sd := shell.Render(ui.Shell)
	middleware.JSONResponse(w, http.StatusOK, models.RecordingResponse{
		Recording: recording.Render(row.State, row.Quota, now),
		Shell:     &sd,
	})
}

// Consent handles POST /sessions/{id}/recording/consent
func (h *RecordingHandler) Consent(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.ConsentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Granted == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "granted is required")
		return
	}
	granted := *req.Granted

	h.apply(w, r, sessionID, "consent", func(row recordingRow, now time.Time) (recordingRow, error) {
		s, err := recording.RequestConsent(row.State, granted, now)
		row.State = s
		return row, err
	})
}

// Retry handles POST /sessions/{id}/recording/retry
func (h *RecordingHandler) Retry(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	h.apply(w, r, sessionID, "retry", func(row recordingRow, _ time.Time) (recordingRow, error) {
		s, err := recording.Retry(row.State)
		row.State = s
		return row, err
	})
}

// TogglePause handles POST /sessions/{id}/recording/pause
func (h *RecordingHandler) TogglePause(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	h.apply(w, r, sessionID, "pause", func(row recordingRow, now time.Time) (recordingRow, error) {
		s, err := recording.TogglePause(row.State, now)
		row.State = s
		return row, err
	})
}

// ReportFailure handles POST /sessions/{id}/recording/failure
// Time recorded before the failure is charged to the trial.
func (h *RecordingHandler) ReportFailure(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.FailureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.apply(w, r, sessionID, "failure", func(row recordingRow, now time.Time) (recordingRow, error) {
		s, err := recording.Fail(row.State, req.Reason, now)
		if err != nil {
			return row, err
		}
		row.State = s
		row.Quota = row.Quota.Debit(s.Accumulated)
		h.metrics.ObserveRecorded(s.Accumulated)
		slog.Warn("recording failed", "session_id", sessionID, "reason", s.Failure)
		return row, nil
	})
}

// StopRecording handles POST /sessions/{id}/recording/stop
// Resets the controller, charges the trial and navigates back.
func (h *RecordingHandler) StopRecording(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	now := h.now()
	var (
		row    recordingRow
		ui     uiState
		result recording.Result
	)

	err := h.withTx(r.Context(), func(tx *sql.Tx) error {
		ctx := r.Context()
		var err error
		if row, err = loadRecording(ctx, tx, sessionID); err != nil {
			return err
		}
		if ui, err = loadUI(ctx, tx, sessionID); err != nil {
			return err
		}

		next, res, err := recording.Stop(row.State, now)
		if err != nil {
			return err
		}
		result = res
		row.State = next
		row.Quota = row.Quota.Debit(res.Elapsed)
		ui.Shell = shell.Back(ui.Shell)

		if err := saveRecording(ctx, tx, sessionID, row); err != nil {
			return err
		}
		return saveUI(ctx, tx, sessionID, ui, now)
	})
	if errors.Is(err, recording.ErrInvalidTransition) {
		h.metrics.Reject("recording", "stop")
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	h.metrics.Transition("recording", "stop")
	h.metrics.ObserveRecorded(result.Elapsed)
	slog.Info("recording stopped",
		"session_id", sessionID,
		"elapsed_ms", result.Elapsed.Milliseconds(),
		"trial_remaining", row.Quota.Label(),
	)

	middleware.JSONResponse(w, http.StatusOK, models.StopRecordingResponse{
		ElapsedSeconds: int64(result.Elapsed / time.Second),
		Elapsed:        recording.FormatClock(result.Elapsed),
		Recording:      recording.Render(row.State, row.Quota, now),
		Shell:          shell.Render(ui.Shell),
	})
}

// apply runs one recording transition under the session lock
func (h *RecordingHandler) apply(w http.ResponseWriter, r *http.Request, sessionID, event string, fn func(recordingRow, time.Time) (recordingRow, error)) {
	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	ctx := r.Context()
	row, err := loadRecording(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	now := h.now()
	row, err = fn(row, now)
	if errors.Is(err, recording.ErrInvalidTransition) {
		h.metrics.Reject("recording", event)
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("recording transition failed", "session_id", sessionID, "event", event, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Recording error")
		return
	}

	if err := saveRecording(ctx, h.db, sessionID, row); err != nil {
		storageError(w, sessionID, err)
		return
	}

	h.metrics.Transition("recording", event)

	middleware.JSONResponse(w, http.StatusOK, models.RecordingResponse{
		Recording: recording.Render(row.State, row.Quota, now),
	})
}
