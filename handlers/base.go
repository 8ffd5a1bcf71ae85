// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/meeting-intel/auth"
	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/metrics"
	"github.com/danielhkuo/meeting-intel/middleware"
	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/shell"
	"github.com/danielhkuo/meeting-intel/tabs"
	"github.com/danielhkuo/meeting-intel/upload"
)

// base carries what every handler needs
type base struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.Metrics
	now     func() time.Time
}

func newBase(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) base {
	return base{
		db:      db,
		cfg:     cfg,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// authorize checks the session id in the path and the X-Session-Key header.
// It writes the error response itself and reports whether to continue.
func (b *base) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID, err := auth.ParseSessionID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid session id")
		return "", false
	}

	key := r.Header.Get(middleware.SessionKeyHeader)
	if err := auth.ValidateSessionKey(sessionID, key, b.cfg.SessionKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session key")
		return "", false
	}

	return sessionID, true
}

// storageError maps a load/save failure to 404 or 500
func storageError(w http.ResponseWriter, sessionID string, err error) {
	if errors.Is(err, errSessionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	slog.Error("session storage failed", "session_id", sessionID, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

// withTx runs fn in a transaction and commits if it returns nil
func (b *base) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (b *base) shellPolicy() shell.Policy {
	p := shell.DefaultPolicy()
	if b.cfg.Policy.DismissThresholdPx > 0 {
		p.DismissThreshold = b.cfg.Policy.DismissThresholdPx
	}
	if b.cfg.Policy.SwipeOpenThresholdPx > 0 {
		p.SwipeOpenThreshold = b.cfg.Policy.SwipeOpenThresholdPx
	}
	return p
}

func (b *base) tabsPolicy() tabs.Policy {
	p := tabs.DefaultPolicy()
	if b.cfg.Policy.BackToTopPx > 0 {
		p.BackToTopThreshold = b.cfg.Policy.BackToTopPx
	}
	return p
}

func (b *base) uploadPolicy() upload.Policy {
	p := upload.DefaultPolicy()
	if len(b.cfg.Policy.AcceptedExtensions) > 0 {
		p.AcceptedExtensions = b.cfg.Policy.AcceptedExtensions
	}
	if b.cfg.Policy.AdvertisedMaxBytes > 0 {
		p.AdvertisedMaxBytes = b.cfg.Policy.AdvertisedMaxBytes
	}
	return p
}

func (b *base) trialTotal() time.Duration {
	if b.cfg.Policy.TrialQuota > 0 {
		return b.cfg.Policy.TrialQuota
	}
	return recording.DefaultTrialTotal
}

// hasTranscript reports whether the session submitted an upload
func hasTranscript(in upload.Intake) bool {
	return in.SubmittedAt != nil
}
