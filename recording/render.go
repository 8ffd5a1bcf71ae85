// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recording

import (
	"fmt"
	"time"
)

const welcomeText = "Get enterprise-grade client meetings summary, follow-up letter and coaching in one click!"

type Control struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type Notice struct {
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Actions []string `json:"actions"`
}

type Status struct {
	Label          string    `json:"label"`
	Live           bool      `json:"live"`
	Clock          string    `json:"clock"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	Hint           string    `json:"hint"`
	Controls       []Control `json:"controls"`
}

type TrialPanel struct {
	Message          string `json:"message"`
	Remaining        string `json:"remaining"`
	PercentRemaining int    `json:"percent_remaining"`
	Exhausted        bool   `json:"exhausted"`
}

type Descriptor struct {
	Phase   Phase      `json:"phase"`
	Welcome string     `json:"welcome"`
	Consent *Notice    `json:"consent,omitempty"`
	Denied  *Notice    `json:"denied,omitempty"`
	Failed  *Notice    `json:"failed,omitempty"`
	Status  *Status    `json:"status,omitempty"`
	Trial   TrialPanel `json:"trial"`
}

func Render(s State, q Quota, now time.Time) Descriptor {
	d := Descriptor{
		Phase:   s.Phase(),
		Welcome: welcomeText,
		Trial: TrialPanel{
			Message:          trialMessage(q),
			Remaining:        q.Label(),
			PercentRemaining: q.PercentRemaining(),
			Exhausted:        q.Exhausted(),
		},
	}

	switch d.Phase {
	case PhaseNoConsent:
		d.Consent = &Notice{
			Title:   "Have the participants agreed to the recording?",
			Actions: []string{"yes", "no"},
		}
		d.Status = &Status{
			Label: "Ready to Record",
			Clock: FormatClock(0),
			Hint:  "Confirm consent to start recording",
		}
	case PhaseDenied:
		d.Denied = &Notice{
			Title:   "Recording Not Permitted",
			Message: "Please ensure all participants agree to recording before proceeding.",
			Actions: []string{"retry"},
		}
	case PhaseFailed:
		d.Failed = &Notice{
			Title:   "Recording Interrupted",
			Message: s.Failure,
			Actions: []string{"retry"},
		}
	case PhaseRecording, PhasePaused:
		elapsed := s.Elapsed(now)
		st := &Status{
			Clock:          FormatClock(elapsed),
			ElapsedSeconds: int64(elapsed / time.Second),
		}
		if d.Phase == PhaseRecording {
			st.Label = "Recording"
			st.Live = true
			st.Hint = "Tap to pause recording"
			st.Controls = []Control{
				{ID: "pause", Label: "Pause", Icon: "mic-off"},
				{ID: "stop", Label: "Stop", Icon: "square"},
			}
		} else {
			st.Label = "Paused"
			st.Hint = "Tap to resume recording"
			st.Controls = []Control{
				{ID: "resume", Label: "Resume", Icon: "mic"},
				{ID: "stop", Label: "Stop", Icon: "square"},
			}
		}
		d.Status = st
	}

	return d
}

func trialMessage(q Quota) string {
	return "Your Free Trial subscription provides " + formatTotal(q.Total) +
		" of recording time. Upgrade to a paid subscription to unlock unlimited recordings and features."
}

// formatTotal prefers whole hours, e.g. "5 hours".
func formatTotal(d time.Duration) string {
	if d <= 0 || d%time.Hour != 0 {
		return formatHoursMinutes(d)
	}
	if h := d / time.Hour; h != 1 {
		return fmt.Sprintf("%d hours", h)
	}
	return "1 hour"
}
