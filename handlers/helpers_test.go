// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/danielhkuo/meeting-intel/testutil"
)

// fakeClock is a settable time source shared by handlers in one test
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// call runs fn against a JSON request for one session
func call(fn http.HandlerFunc, method, path, sessionID, sessionKey string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, testutil.SessionHeaders(sessionKey))
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func ptr[T any](v T) *T {
	return &v
}
