// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the meeting-intel API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every session route is wrapped with request logging and latency metrics.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Sessions:

	POST /sessions      - Create session (returns session_key)
	GET  /sessions/{id} - Render every machine

Navigation shell (requires X-Session-Key):

	POST /sessions/{id}/view         - Select view
	POST /sessions/{id}/back         - Return from recording
	POST /sessions/{id}/menu/open    - Open more menu
	POST /sessions/{id}/menu/close   - Close more menu
	POST /sessions/{id}/menu/toggle  - Toggle more menu
	POST /sessions/{id}/menu/items   - Activate menu entry
	POST /sessions/{id}/menu/drag    - Drawer drag start/move/end
	POST /sessions/{id}/tabbar/swipe - Tab bar swipe start/end

Meeting intelligence tabs:

	POST /sessions/{id}/tabs   - Select tab
	POST /sessions/{id}/scroll - Report scroll offset

Recording:

	GET  /sessions/{id}/recording         - Current descriptor
	POST /sessions/{id}/recording/open    - Enter from the transcript pane
	POST /sessions/{id}/recording/consent - Grant or deny
	POST /sessions/{id}/recording/retry   - Back to the consent gate
	POST /sessions/{id}/recording/pause   - Pause or resume
	POST /sessions/{id}/recording/stop    - Stop, charge trial, go back
	POST /sessions/{id}/recording/failure - Report capture failure

Upload:

	GET  /sessions/{id}/upload        - Current descriptor
	POST /sessions/{id}/upload/drag   - Drop target events
	POST /sessions/{id}/upload/file   - Multipart file selection
	POST /sessions/{id}/upload/submit - Submit selected file

# Handler Initialization

Each router builds its own prometheus registry and passes the collectors to
every handler along with the database connection and configuration:

	sessionHandler := handlers.NewSessionHandler(db, cfg, m)
*/
package router
