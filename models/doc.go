// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - NavigateRequest: view
  - MenuItemRequest: item
  - GestureRequest: phase (start, move, end), optional y
  - SelectTabRequest: tab
  - ScrollRequest: y
  - ConsentRequest: granted (required)
  - FailureRequest: reason
  - UploadDragRequest: event (enter, over, leave, drop)

File selection is multipart rather than JSON (fields file and source).

# Response Types

Every response carries render descriptors from the domain packages, never
markup:

  - CreateSessionResponse: session_id, session_key, session
  - SessionView: shell, tabs, recording, upload descriptors
  - ShellResponse: shell
  - TabsResponse: tabs
  - RecordingResponse: recording, shell when the transition navigated
  - StopRecordingResponse: elapsed_seconds, elapsed (MM:SS), recording, shell
  - UploadResponse: upload, replaced
  - ErrorResponse: error, message
*/
package models
