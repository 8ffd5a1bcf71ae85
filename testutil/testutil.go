// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/meeting-intel/auth"
	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/db"
)

// SetupTestDB opens a private in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration with a private upload dir
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()

	return cliparse.Config{
		Port:           3318,
		DatabaseType:   cliparse.DatabaseSQLite,
		DatabaseURL:    ":memory:",
		SessionKeySalt: "test-session-salt",
		UploadDir:      t.TempDir(),
		LogFormat:      "text",
		Policy:         cliparse.DefaultPolicy(),
	}
}

// CreateTestSession inserts a fresh UI session and returns its id and key
func CreateTestSession(t *testing.T, db *sql.DB, cfg cliparse.Config) (sessionID, sessionKey string) {
	t.Helper()

	sessionID = auth.NewSessionID()
	sessionKey = auth.GenerateSessionKey(sessionID, cfg.SessionKeySalt)
	now := time.Now().UTC()

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO ui_session (id, created_at, updated_at) VALUES ($1, $2, $2)`, []any{sessionID, now}},
		{`INSERT INTO recording_session (session_id, trial_total_ms) VALUES ($1, $2)`, []any{sessionID, cfg.Policy.TrialQuota.Milliseconds()}},
		{`INSERT INTO upload_intake (session_id) VALUES ($1)`, []any{sessionID}},
	}
	for _, s := range stmts {
		if _, err := db.Exec(s.query, s.args...); err != nil {
			t.Fatalf("Failed to create test session: %v", err)
		}
	}

	return sessionID, sessionKey
}

// SessionHeaders returns the auth header for a session key
func SessionHeaders(sessionKey string) map[string]string {
	return map[string]string{"X-Session-Key": sessionKey}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeUploadRequest creates a multipart request with a file part and an
// optional source field
func MakeUploadRequest(t *testing.T, path, filename string, content []byte, source string, headers map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if source != "" {
		if err := mw.WriteField("source", source); err != nil {
			t.Fatalf("Failed to write source field: %v", err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("Failed to write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
