// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/meeting-intel/auth"
	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/metrics"
	"github.com/danielhkuo/meeting-intel/middleware"
	"github.com/danielhkuo/meeting-intel/models"
	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/shell"
	"github.com/danielhkuo/meeting-intel/tabs"
	"github.com/danielhkuo/meeting-intel/upload"
)

type SessionHandler struct {
	base
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *SessionHandler {
	return &SessionHandler{base: newBase(db, cfg, m)}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := auth.NewSessionID()
	sessionKey := auth.GenerateSessionKey(sessionID, h.cfg.SessionKeySalt)
	now := h.now()

	var view models.SessionView
	err := h.withTx(r.Context(), func(tx *sql.Tx) error {
		if err := insertSession(r.Context(), tx, sessionID, h.trialTotal(), now); err != nil {
			return err
		}
		var err error
		view, err = h.sessionView(r.Context(), tx, sessionID, now)
		return err
	})
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.metrics.SessionCreated()
	slog.Info("session created",
		"session_id", sessionID,
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionKeySalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:  sessionID,
		SessionKey: sessionKey,
		Session:    view,
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	view, err := h.sessionView(r.Context(), h.db, sessionID, h.now())
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// sessionView renders every machine of one session
func (b *base) sessionView(ctx context.Context, q querier, sessionID string, now time.Time) (models.SessionView, error) {
	ui, err := loadUI(ctx, q, sessionID)
	if err != nil {
		return models.SessionView{}, err
	}
	rec, err := loadRecording(ctx, q, sessionID)
	if err != nil {
		return models.SessionView{}, err
	}
	in, err := loadUpload(ctx, q, sessionID)
	if err != nil {
		return models.SessionView{}, err
	}

	return models.SessionView{
		SessionID: sessionID,
		Shell:     shell.Render(ui.Shell),
		Tabs:      tabs.Render(ui.Tabs, hasTranscript(in)),
		Recording: recording.Render(rec.State, rec.Quota, now),
		Upload:    upload.Render(in, b.uploadPolicy()),
	}, nil
}
