// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/meeting-intel/models"
	"github.com/danielhkuo/meeting-intel/testutil"
	"github.com/danielhkuo/meeting-intel/upload"
)

func selectFile(h *UploadHandler, sessionID, sessionKey, name string, content []byte, source string, t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeUploadRequest(t, "/sessions/"+sessionID+"/upload/file", name, content, source, testutil.SessionHeaders(sessionKey))
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()
	h.SelectFile(w, req)
	return w
}

func blobs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSubmitRequiresFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewUploadHandler(db, cfg, nil)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	w := call(handler.Submit, "POST", "/upload/submit", sessionID, sessionKey, nil)
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = call(handler.GetUpload, "GET", "/upload", sessionID, sessionKey, nil)
	var resp models.UploadResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Upload.SubmittedAt != nil {
		t.Error("Expected nothing submitted")
	}
	if resp.Upload.Upload.Enabled {
		t.Error("Expected upload button disabled")
	}
}

func TestSelectAndSubmitFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewUploadHandler(db, cfg, nil)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	content := []byte("WEBVTT\n\n00:00.000 --> 00:01.000\nHello")
	w := selectFile(handler, sessionID, sessionKey, "call.vtt", content, "drop", t)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UploadResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Replaced {
		t.Error("Expected first selection not to replace anything")
	}
	if resp.Upload.File == nil {
		t.Fatal("Expected file line")
	}
	if resp.Upload.File.Name != "call.vtt" || resp.Upload.File.Size != int64(len(content)) {
		t.Errorf("Unexpected file line: %+v", resp.Upload.File)
	}
	if len(resp.Upload.File.ID) != 24 {
		t.Errorf("Expected 24 char file id, got %q", resp.Upload.File.ID)
	}
	if resp.Upload.File.Source != upload.SourceDrop {
		t.Errorf("Expected drop source, got %s", resp.Upload.File.Source)
	}
	if !resp.Upload.Upload.Enabled {
		t.Error("Expected upload button enabled once a file is selected")
	}

	stored := blobs(t, cfg.UploadDir)
	if len(stored) != 1 || filepath.Ext(stored[0]) != ".vtt" {
		t.Fatalf("Expected one .vtt blob, got %v", stored)
	}
	data, err := os.ReadFile(filepath.Join(cfg.UploadDir, stored[0]))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, content) {
		t.Error("Stored blob does not match upload")
	}

	w = call(handler.Submit, "POST", "/upload/submit", sessionID, sessionKey, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Upload.SubmittedAt == nil {
		t.Error("Expected submitted_at after submit")
	}
}

func TestSelectReplacesFile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewUploadHandler(db, cfg, nil)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	w := selectFile(handler, sessionID, sessionKey, "first.txt", []byte("one"), "", t)
	testutil.AssertStatus(t, w, http.StatusOK)
	call(handler.Submit, "POST", "/upload/submit", sessionID, sessionKey, nil)

	w = selectFile(handler, sessionID, sessionKey, "second.pdf", []byte("two!"), "click", t)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UploadResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Replaced {
		t.Error("Expected second selection to replace the first")
	}
	if resp.Upload.File == nil || resp.Upload.File.Name != "second.pdf" {
		t.Errorf("Expected second.pdf in the slot, got %+v", resp.Upload.File)
	}
	if resp.Upload.SubmittedAt != nil {
		t.Error("Expected a new selection to clear the submission")
	}

	stored := blobs(t, cfg.UploadDir)
	if len(stored) != 1 || filepath.Ext(stored[0]) != ".pdf" {
		t.Errorf("Expected only the replacement blob, got %v", stored)
	}
}

func TestSelectFileAdvisoryOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	cfg.Policy.AdvertisedMaxBytes = 4
	handler := NewUploadHandler(db, cfg, nil)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	w := selectFile(handler, sessionID, sessionKey, "notes.exe", []byte("too large"), "", t)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UploadResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Upload.File == nil {
		t.Fatal("Expected the file to be kept")
	}
	if len(resp.Upload.File.Notes) != 2 {
		t.Errorf("Expected type and size notes, got %v", resp.Upload.File.Notes)
	}
}

func TestSelectFileErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	t.Run("no file part", func(t *testing.T) {
		handler := NewUploadHandler(db, cfg, nil)
		w := selectFile(handler, sessionID, sessionKey, "", nil, "click", t)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("not multipart", func(t *testing.T) {
		handler := NewUploadHandler(db, cfg, nil)
		w := call(handler.SelectFile, "POST", "/upload/file", sessionID, sessionKey, map[string]string{"file": "x"})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("hard cap", func(t *testing.T) {
		capped := cfg
		capped.MaxUploadBytes = 512
		handler := NewUploadHandler(db, capped, nil)

		w := selectFile(handler, sessionID, sessionKey, "big.wav", bytes.Repeat([]byte{1}, 4096), "", t)
		testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)

		if stored := blobs(t, cfg.UploadDir); len(stored) != 0 {
			t.Errorf("Expected partial blob removed, got %v", stored)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		handler := NewUploadHandler(db, cfg, nil)
		w := selectFile(handler, sessionID, "nope", "a.txt", []byte("a"), "", t)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestUploadDrag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewUploadHandler(db, cfg, nil)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	tests := []struct {
		event string
		want  bool
	}{
		{"enter", true},
		{"over", true},
		{"leave", false},
		{"over", true},
		{"drop", false},
	}

	for _, tt := range tests {
		w := call(handler.Drag, "POST", "/upload/drag", sessionID, sessionKey, models.UploadDragRequest{Event: tt.event})
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.UploadResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Upload.DropActive != tt.want {
			t.Errorf("%s: expected drop_active %v, got %v", tt.event, tt.want, resp.Upload.DropActive)
		}
	}

	w := call(handler.Drag, "POST", "/upload/drag", sessionID, sessionKey, models.UploadDragRequest{Event: "hover"})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
