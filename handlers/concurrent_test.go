// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/meeting-intel/models"
	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/testutil"
)

// TestConcurrentMenuToggles verifies that toggles racing on one session are
// applied one after another, so an even number leaves the menu closed
func TestConcurrentMenuToggles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewShellHandler(db, cfg, nil)
	sessionID, sessionKey := testutil.CreateTestSession(t, db, cfg)

	numToggles := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numToggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := call(handler.ToggleMenu, "POST", "/menu/toggle", sessionID, sessionKey, nil)
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numToggles {
		t.Fatalf("Expected %d successful toggles, got %d", numToggles, successCount.Load())
	}

	var menuOpen bool
	if err := db.QueryRow("SELECT menu_open FROM ui_session WHERE id = $1", sessionID).Scan(&menuOpen); err != nil {
		t.Fatal(err)
	}
	if menuOpen {
		t.Error("Expected menu closed after an even number of toggles")
	}

	if n := sessionLocks.len(); n != 0 {
		t.Errorf("Expected session locks released, %d still held", n)
	}
}

// TestConcurrentPauseToggles verifies the recording state stays consistent
// when pause and resume race
func TestConcurrentPauseToggles(t *testing.T) {
	clock := newFakeClock()
	h, _, sessionID, sessionKey := newRecordingHandler(t, clock)

	w := call(h.Consent, "POST", "/recording/consent", sessionID, sessionKey, models.ConsentRequest{Granted: ptr(true)})
	testutil.AssertStatus(t, w, http.StatusOK)

	numToggles := 10
	var wg sync.WaitGroup
	for i := 0; i < numToggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			call(h.TogglePause, "POST", "/recording/pause", sessionID, sessionKey, nil)
		}()
	}
	wg.Wait()

	w = call(h.GetRecording, "GET", "/recording", sessionID, sessionKey, nil)
	var resp models.RecordingResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Recording.Phase != recording.PhaseRecording {
		t.Errorf("Expected recording after an even number of toggles, got %s", resp.Recording.Phase)
	}
}

// TestConcurrentSessionCreation verifies that parallel creates each get
// their own rows
func TestConcurrentSessionCreation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewSessionHandler(db, cfg, nil)

	numSessions := 10
	ids := make([]string, numSessions)
	var wg sync.WaitGroup

	for i := 0; i < numSessions; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/sessions", nil, nil)
			w := httptest.NewRecorder()
			handler.CreateSession(w, req)
			if w.Code != http.StatusCreated {
				return
			}

			var resp models.CreateSessionResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				return
			}
			ids[idx] = resp.SessionID
		}(i)
	}

	wg.Wait()

	seen := make(map[string]bool)
	for i, id := range ids {
		if id == "" {
			t.Errorf("Session %d was not created", i)
			continue
		}
		if seen[id] {
			t.Errorf("Duplicate session id %s", id)
		}
		seen[id] = true
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM recording_session").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != numSessions {
		t.Errorf("Expected %d recording rows, got %d", numSessions, count)
	}
}

func TestKeyedMutexReleasesKeys(t *testing.T) {
	k := newKeyedMutex()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "a"
			if i%2 == 1 {
				key = "b"
			}
			unlock := k.Lock(key)
			if key == "a" {
				counter++
			}
			unlock()
		}(i)
	}
	wg.Wait()

	if counter != 25 {
		t.Errorf("Expected 25 increments under key a, got %d", counter)
	}
	if n := k.len(); n != 0 {
		t.Errorf("Expected no keys left, got %d", n)
	}
}
