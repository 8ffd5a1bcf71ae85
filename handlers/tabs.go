// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/metrics"
	"github.com/danielhkuo/meeting-intel/middleware"
	"github.com/danielhkuo/meeting-intel/models"
	"github.com/danielhkuo/meeting-intel/tabs"
)

type TabsHandler struct {
	base
}

func NewTabsHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *TabsHandler {
	return &TabsHandler{base: newBase(db, cfg, m)}
}

// SelectTab handles POST /sessions/{id}/tabs
func (h *TabsHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.SelectTabRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tab, err := tabs.ParseTab(req.Tab)
	if err != nil {
		h.metrics.Reject("tabs", "select")
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.apply(w, r, sessionID, "select", func(s tabs.State) tabs.State {
		return tabs.SetActive(s, tab)
	})
}

// Scroll handles POST /sessions/{id}/scroll
func (h *TabsHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.ScrollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	policy := h.tabsPolicy()
	h.apply(w, r, sessionID, "scroll", func(s tabs.State) tabs.State {
		return tabs.Scroll(s, req.Y, policy)
	})
}

func (h *TabsHandler) apply(w http.ResponseWriter, r *http.Request, sessionID, event string, fn func(tabs.State) tabs.State) {
	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	ctx := r.Context()
	ui, err := loadUI(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}
	in, err := loadUpload(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	ui.Tabs = fn(ui.Tabs)

	if err := saveUI(ctx, h.db, sessionID, ui, h.now()); err != nil {
		storageError(w, sessionID, err)
		return
	}

	h.metrics.Transition("tabs", event)

	middleware.JSONResponse(w, http.StatusOK, models.TabsResponse{
		Tabs: tabs.Render(ui.Tabs, hasTranscript(in)),
	})
}
