// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Meeting Intelligence API.

# Handler Types

Each handler embeds the database, config and metrics it needs:

  - SessionHandler: Creating and reading a UI session
  - ShellHandler: Navigation, the side menu and its gestures
  - TabsHandler: The meeting-intelligence tab strip and scroll
  - RecordingHandler: Consent, pause, stop and the trial quota
  - UploadHandler: The transcript intake slot

Handlers are created via constructor functions:

	shellHandler := handlers.NewShellHandler(db, cfg, m)

A nil *metrics.Metrics is allowed.

# Sessions

	POST /sessions      → CreateSession (returns session_key)
	GET  /sessions/{id} → GetSession (full render)

Every other route is scoped to a session and requires the X-Session-Key
header. A malformed id is 400, a bad key 401 and an unknown session 404.

# State and Rendering

Handlers load the session's rows, apply one transition from the shell,
tabs, recording or upload package, save, and respond with that package's
render descriptor. Requests for the same session are serialized:

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

Transitions that touch more than one table, such as stopping a recording,
run in a single transaction.

# Shell

	POST /sessions/{id}/view         → Navigate
	POST /sessions/{id}/back         → Back
	POST /sessions/{id}/menu/open    → OpenMenu
	POST /sessions/{id}/menu/close   → CloseMenu
	POST /sessions/{id}/menu/toggle  → ToggleMenu
	POST /sessions/{id}/menu/items   → SelectMenuItem
	POST /sessions/{id}/menu/drag    → Drag (start, move, end)
	POST /sessions/{id}/tabbar/swipe → Swipe (start, end)

# Tabs

	POST /sessions/{id}/tabs   → SelectTab
	POST /sessions/{id}/scroll → Scroll

# Recording

	GET  /sessions/{id}/recording         → GetRecording
	POST /sessions/{id}/recording/open    → OpenRecording
	POST /sessions/{id}/recording/consent → Consent
	POST /sessions/{id}/recording/pause   → TogglePause
	POST /sessions/{id}/recording/stop    → StopRecording
	POST /sessions/{id}/recording/failure → ReportFailure
	POST /sessions/{id}/recording/retry   → Retry

Transitions the current phase does not allow are 409 Conflict. Elapsed
time is computed from stored timestamps on each read.

# Upload

	GET  /sessions/{id}/upload        → GetUpload
	POST /sessions/{id}/upload/drag   → Drag
	POST /sessions/{id}/upload/file   → SelectFile (multipart)
	POST /sessions/{id}/upload/submit → Submit

Selected files are written to the configured upload directory. Type and
size limits are shown as advice only; MAX_UPLOAD_BYTES, when set, is the
only hard limit.
*/
package handlers
