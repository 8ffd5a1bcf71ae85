// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/handlers"
	"github.com/danielhkuo/meeting-intel/metrics"
	"github.com/danielhkuo/meeting-intel/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Each router owns its registry so tests can build several
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(db, cfg, m)
	shellHandler := handlers.NewShellHandler(db, cfg, m)
	tabsHandler := handlers.NewTabsHandler(db, cfg, m)
	recordingHandler := handlers.NewRecordingHandler(db, cfg, m)
	uploadHandler := handlers.NewUploadHandler(db, cfg, m)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(m, pattern, h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	// Sessions
	handle("POST /sessions", sessionHandler.CreateSession)
	handle("GET /sessions/{id}", sessionHandler.GetSession)

	// Navigation shell
	handle("POST /sessions/{id}/view", shellHandler.Navigate)
	handle("POST /sessions/{id}/back", shellHandler.Back)
	handle("POST /sessions/{id}/menu/open", shellHandler.OpenMenu)
	handle("POST /sessions/{id}/menu/close", shellHandler.CloseMenu)
	handle("POST /sessions/{id}/menu/toggle", shellHandler.ToggleMenu)
	handle("POST /sessions/{id}/menu/items", shellHandler.SelectMenuItem)
	handle("POST /sessions/{id}/menu/drag", shellHandler.Drag)
	handle("POST /sessions/{id}/tabbar/swipe", shellHandler.Swipe)

	// Meeting intelligence tabs
	handle("POST /sessions/{id}/tabs", tabsHandler.SelectTab)
	handle("POST /sessions/{id}/scroll", tabsHandler.Scroll)

	// Recording
	handle("GET /sessions/{id}/recording", recordingHandler.GetRecording)
	handle("POST /sessions/{id}/recording/open", recordingHandler.OpenRecording)
	handle("POST /sessions/{id}/recording/consent", recordingHandler.Consent)
	handle("POST /sessions/{id}/recording/retry", recordingHandler.Retry)
	handle("POST /sessions/{id}/recording/pause", recordingHandler.TogglePause)
	handle("POST /sessions/{id}/recording/stop", recordingHandler.StopRecording)
	handle("POST /sessions/{id}/recording/failure", recordingHandler.ReportFailure)

	// Upload
	handle("GET /sessions/{id}/upload", uploadHandler.GetUpload)
	handle("POST /sessions/{id}/upload/drag", uploadHandler.Drag)
	handle("POST /sessions/{id}/upload/file", uploadHandler.SelectFile)
	handle("POST /sessions/{id}/upload/submit", uploadHandler.Submit)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meeting-intel API v1"))
	})

	return mux
}
