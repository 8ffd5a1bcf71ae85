// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recording

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTransition = errors.New("invalid recording transition")

type Consent string

const (
	ConsentUnset   Consent = "unset"
	ConsentGranted Consent = "granted"
	ConsentDenied  Consent = "denied"
)

type Phase string

const (
	PhaseNoConsent Phase = "no_consent"
	PhaseDenied    Phase = "denied"
	PhaseRecording Phase = "recording"
	PhasePaused    Phase = "paused"
	PhaseFailed    Phase = "failed"
)

// DefaultFailure is used when the client reports a failure without a reason.
const DefaultFailure = "capture failed"

// State is one recording session. Paused is only meaningful while
// Recording is true. Elapsed time is derived from the timestamps.
type State struct {
	Consent     Consent
	Recording   bool
	Paused      bool
	StartedAt   time.Time
	ResumedAt   time.Time
	Accumulated time.Duration
	Failure     string
}

// Result describes a stopped session.
type Result struct {
	StartedAt time.Time
	StoppedAt time.Time
	Elapsed   time.Duration
}

func New() State {
	return State{Consent: ConsentUnset}
}

func (s State) Phase() Phase {
	switch {
	case s.Failure != "":
		return PhaseFailed
	case s.Consent == ConsentDenied:
		return PhaseDenied
	case s.Recording && s.Paused:
		return PhasePaused
	case s.Recording:
		return PhaseRecording
	default:
		return PhaseNoConsent
	}
}

// Elapsed is the banked time plus the running segment, if any.
func (s State) Elapsed(now time.Time) time.Duration {
	d := s.Accumulated
	if s.Recording && !s.Paused && !s.ResumedAt.IsZero() && now.After(s.ResumedAt) {
		d += now.Sub(s.ResumedAt)
	}
	return d
}

func invalid(event string, from Phase) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, from)
}

// RequestConsent answers the consent gate. Granting starts recording.
func RequestConsent(s State, granted bool, now time.Time) (State, error) {
	if p := s.Phase(); p != PhaseNoConsent {
		return s, invalid("consent", p)
	}
	if !granted {
		next := New()
		next.Consent = ConsentDenied
		return next, nil
	}
	return State{
		Consent:   ConsentGranted,
		Recording: true,
		StartedAt: now,
		ResumedAt: now,
	}, nil
}

// Retry returns a denied or failed session to the consent gate.
func Retry(s State) (State, error) {
	switch p := s.Phase(); p {
	case PhaseDenied, PhaseFailed:
		return New(), nil
	default:
		return s, invalid("retry", p)
	}
}

func TogglePause(s State, now time.Time) (State, error) {
	switch p := s.Phase(); p {
	case PhaseRecording:
		s.Accumulated = s.Elapsed(now)
		s.Paused = true
		return s, nil
	case PhasePaused:
		s.Paused = false
		s.ResumedAt = now
		return s, nil
	default:
		return s, invalid("pause", p)
	}
}

// Stop ends the session and resets all counters.
func Stop(s State, now time.Time) (State, Result, error) {
	switch p := s.Phase(); p {
	case PhaseRecording, PhasePaused:
		return New(), Result{
			StartedAt: s.StartedAt,
			StoppedAt: now,
			Elapsed:   s.Elapsed(now),
		}, nil
	default:
		return s, Result{}, invalid("stop", p)
	}
}

// Fail records a capture failure reported by the client. Time recorded so
// far is kept so it can still be charged.
func Fail(s State, reason string, now time.Time) (State, error) {
	switch p := s.Phase(); p {
	case PhaseRecording, PhasePaused:
		if reason == "" {
			reason = DefaultFailure
		}
		s.Accumulated = s.Elapsed(now)
		s.Recording = false
		s.Paused = false
		s.Failure = reason
		return s, nil
	default:
		return s, invalid("failure", p)
	}
}

// FormatClock renders a duration as MM:SS.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
