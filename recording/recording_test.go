// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recording

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func TestConsentDeniedNeverRecords(t *testing.T) {
	s, err := RequestConsent(New(), false, t0)
	require.NoError(t, err)
	assert.Equal(t, PhaseDenied, s.Phase())
	assert.False(t, s.Recording)

	_, err = TogglePause(s, t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestConsentGrantedStartsRecording(t *testing.T) {
	s, err := RequestConsent(New(), true, t0)
	require.NoError(t, err)
	assert.Equal(t, PhaseRecording, s.Phase())
	assert.Equal(t, ConsentGranted, s.Consent)
	assert.Equal(t, t0, s.StartedAt)
}

func TestConsentOnlyFromGate(t *testing.T) {
	s, _ := RequestConsent(New(), true, t0)
	_, err := RequestConsent(s, true, t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	denied, _ := RequestConsent(New(), false, t0)
	_, err = RequestConsent(denied, true, t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestRetry(t *testing.T) {
	denied, _ := RequestConsent(New(), false, t0)
	s, err := Retry(denied)
	require.NoError(t, err)
	assert.Equal(t, PhaseNoConsent, s.Phase())

	_, err = Retry(New())
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestPauseUnreachableWithoutConsent(t *testing.T) {
	_, err := TogglePause(New(), t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, _, err = Stop(New(), t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestElapsedExcludesPauses(t *testing.T) {
	s, _ := RequestConsent(New(), true, t0)

	s, err := TogglePause(s, t0.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, PhasePaused, s.Phase())
	assert.Equal(t, 30*time.Second, s.Elapsed(t0.Add(10*time.Minute)))

	s, err = TogglePause(s, t0.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, PhaseRecording, s.Phase())
	assert.Equal(t, 40*time.Second, s.Elapsed(t0.Add(100*time.Second)))

	next, res, err := Stop(s, t0.Add(120*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, res.Elapsed)
	assert.Equal(t, New(), next)
}

func TestStopFromPaused(t *testing.T) {
	s, _ := RequestConsent(New(), true, t0)
	s, _ = TogglePause(s, t0.Add(time.Minute))

	next, res, err := Stop(s, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, res.Elapsed)
	assert.Equal(t, PhaseNoConsent, next.Phase())
}

func TestFail(t *testing.T) {
	s, _ := RequestConsent(New(), true, t0)
	s, err := Fail(s, "", t0.Add(45*time.Second))
	require.NoError(t, err)
	assert.Equal(t, PhaseFailed, s.Phase())
	assert.Equal(t, DefaultFailure, s.Failure)
	assert.Equal(t, 45*time.Second, s.Accumulated)
	assert.False(t, s.Recording)

	_, err = TogglePause(s, t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	s, err = Retry(s)
	require.NoError(t, err)
	assert.Equal(t, PhaseNoConsent, s.Phase())

	_, err = Fail(New(), "mic unplugged", t0)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "01:05", FormatClock(65*time.Second))
	assert.Equal(t, "125:00", FormatClock(125*time.Minute))
	assert.Equal(t, "00:00", FormatClock(-time.Second))
}

func TestRenderPhases(t *testing.T) {
	q := Quota{Total: DefaultTrialTotal}

	d := Render(New(), q, t0)
	assert.NotNil(t, d.Consent)
	require.NotNil(t, d.Status)
	assert.Equal(t, "Ready to Record", d.Status.Label)
	assert.False(t, d.Status.Live)
	assert.Equal(t, "00:00", d.Status.Clock)
	assert.Empty(t, d.Status.Controls)

	denied, _ := RequestConsent(New(), false, t0)
	d = Render(denied, q, t0)
	assert.Nil(t, d.Status)
	require.NotNil(t, d.Denied)
	assert.Equal(t, "Recording Not Permitted", d.Denied.Title)

	live, _ := RequestConsent(New(), true, t0)
	d = Render(live, q, t0.Add(75*time.Second))
	require.NotNil(t, d.Status)
	assert.Equal(t, "Recording", d.Status.Label)
	assert.True(t, d.Status.Live)
	assert.Equal(t, "01:15", d.Status.Clock)
	assert.Equal(t, "pause", d.Status.Controls[0].ID)

	paused, _ := TogglePause(live, t0.Add(10*time.Second))
	d = Render(paused, q, t0.Add(time.Hour))
	assert.Equal(t, "Paused", d.Status.Label)
	assert.False(t, d.Status.Live)
	assert.Equal(t, "00:10", d.Status.Clock)
	assert.Equal(t, "resume", d.Status.Controls[0].ID)
}
