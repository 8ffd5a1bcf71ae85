// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the meeting-intel API server.

meeting-intel keeps the interface state of a meeting assistant on the
server: the navigation shell with its bottom tab bar and more menu, the
meeting intelligence tabs, the recording controller with its consent gate
and trial quota, and the transcript upload form. Clients post interaction
events and paint the render descriptors they get back.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SESSION_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..." -session-salt ...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - SESSION_KEY_SALT (-session-salt): Secret for session key HMAC
  - DATABASE_URL (-d): Only when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - UPLOAD_DIR (-upload-dir): Uploaded file storage (default: uploads)
  - MAX_UPLOAD_BYTES (-max-upload): Hard request size cap (default: off)
  - POLICY_FILE (-policy): YAML interaction constants
  - LOG_FORMAT (-log-format): text or json

# Architecture

  - shell, tabs, recording, upload: Pure state machines and renderers
  - handlers: HTTP request handlers that load, transition and save
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response types
  - metrics: Prometheus collectors
  - auth: Session ids and keys
  - db: Driver selection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
