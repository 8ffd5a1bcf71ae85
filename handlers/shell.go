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
	"github.com/danielhkuo/meeting-intel/shell"
)

type ShellHandler struct {
	base
}

func NewShellHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *ShellHandler {
	return &ShellHandler{base: newBase(db, cfg, m)}
}

// Navigate handles POST /sessions/{id}/view
func (h *ShellHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.NavigateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.View == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "view is required")
		return
	}

	// Unknown views land on the dashboard
	view := shell.ParseView(req.View)
	h.apply(w, r, sessionID, "navigate", func(s shell.State) shell.State {
		return shell.Navigate(s, view)
	})
}

// Back handles POST /sessions/{id}/back
func (h *ShellHandler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	h.apply(w, r, sessionID, "back", shell.Back)
}

// OpenMenu handles POST /sessions/{id}/menu/open
func (h *ShellHandler) OpenMenu(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	h.apply(w, r, sessionID, "menu_open", shell.OpenMenu)
}

// CloseMenu handles POST /sessions/{id}/menu/close
func (h *ShellHandler) CloseMenu(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	h.apply(w, r, sessionID, "menu_close", shell.CloseMenu)
}

// ToggleMenu handles POST /sessions/{id}/menu/toggle
func (h *ShellHandler) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	h.apply(w, r, sessionID, "menu_toggle", shell.ToggleMenu)
}

// SelectMenuItem handles POST /sessions/{id}/menu/items
func (h *ShellHandler) SelectMenuItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.MenuItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	item, err := shell.ParseMenuItem(req.Item)
	if err != nil {
		h.metrics.Reject("shell", "menu_item")
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.apply(w, r, sessionID, "menu_item", func(s shell.State) shell.State {
		return shell.SelectMenuItem(s, item)
	})
}

// Drag handles POST /sessions/{id}/menu/drag
func (h *ShellHandler) Drag(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.GestureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	policy := h.shellPolicy()
	var fn func(shell.State) shell.State

	switch req.Phase {
	case models.PhaseStart, models.PhaseMove:
		if req.Y == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "y is required")
			return
		}
		y := *req.Y
		if req.Phase == models.PhaseStart {
			fn = func(s shell.State) shell.State { return shell.DragStart(s, y) }
		} else {
			fn = func(s shell.State) shell.State { return shell.DragMove(s, y) }
		}
	case models.PhaseEnd:
		fn = func(s shell.State) shell.State {
			if req.Y != nil {
				s = shell.DragMove(s, *req.Y)
			}
			return shell.DragEnd(s, policy)
		}
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "phase must be start, move or end")
		return
	}

	h.apply(w, r, sessionID, "drag_"+req.Phase, fn)
}

// Swipe handles POST /sessions/{id}/tabbar/swipe
func (h *ShellHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.GestureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Y == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "y is required")
		return
	}
	y := *req.Y
	policy := h.shellPolicy()

	switch req.Phase {
	case models.PhaseStart:
		h.apply(w, r, sessionID, "swipe_start", func(s shell.State) shell.State {
			return shell.SwipeStart(s, y)
		})
	case models.PhaseEnd:
		h.apply(w, r, sessionID, "swipe_end", func(s shell.State) shell.State {
			return shell.SwipeEnd(s, y, policy)
		})
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "phase must be start or end")
	}
}

// apply runs one shell transition under the session lock and renders the result
func (h *ShellHandler) apply(w http.ResponseWriter, r *http.Request, sessionID, event string, fn func(shell.State) shell.State) {
	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	ctx := r.Context()
	ui, err := loadUI(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	ui.Shell = fn(ui.Shell)

	if err := saveUI(ctx, h.db, sessionID, ui, h.now()); err != nil {
		storageError(w, sessionID, err)
		return
	}

	h.metrics.Transition("shell", event)

	middleware.JSONResponse(w, http.StatusOK, models.ShellResponse{
		Shell: shell.Render(ui.Shell),
	})
}
