// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/shell"
	"github.com/danielhkuo/meeting-intel/tabs"
	"github.com/danielhkuo/meeting-intel/upload"
)

// Gesture phases
const (
	PhaseStart = "start"
	PhaseMove  = "move"
	PhaseEnd   = "end"
)

// Request types

type NavigateRequest struct {
	View string `json:"view"`
}

type MenuItemRequest struct {
	Item string `json:"item"`
}

// Y is optional on end; when set it is applied as a final move.
type GestureRequest struct {
	Phase string   `json:"phase"`
	Y     *float64 `json:"y,omitempty"`
}

type SelectTabRequest struct {
	Tab string `json:"tab"`
}

type ScrollRequest struct {
	Y float64 `json:"y"`
}

type ConsentRequest struct {
	Granted *bool `json:"granted"`
}

type FailureRequest struct {
	Reason string `json:"reason"`
}

type UploadDragRequest struct {
	Event string `json:"event"`
}

// Response types

// SessionView is everything the client needs to paint the interface.
type SessionView struct {
	SessionID string               `json:"session_id"`
	Shell     shell.Descriptor     `json:"shell"`
	Tabs      tabs.Descriptor      `json:"tabs"`
	Recording recording.Descriptor `json:"recording"`
	Upload    upload.Descriptor    `json:"upload"`
}

type CreateSessionResponse struct {
	SessionID  string      `json:"session_id"`
	SessionKey string      `json:"session_key"`
	Session    SessionView `json:"session"`
}

type ShellResponse struct {
	Shell shell.Descriptor `json:"shell"`
}

type TabsResponse struct {
	Tabs tabs.Descriptor `json:"tabs"`
}

// Shell is set when the transition also moved the shell.
type RecordingResponse struct {
	Recording recording.Descriptor `json:"recording"`
	Shell     *shell.Descriptor    `json:"shell,omitempty"`
}

type StopRecordingResponse struct {
	ElapsedSeconds int64                `json:"elapsed_seconds"`
	Elapsed        string               `json:"elapsed"`
	Recording      recording.Descriptor `json:"recording"`
	Shell          shell.Descriptor     `json:"shell"`
}

type UploadResponse struct {
	Upload   upload.Descriptor `json:"upload"`
	Replaced bool              `json:"replaced"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
