// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabs

type Tone string

const (
	TonePrimary Tone = "primary"
	ToneAccent  Tone = "accent"
	ToneMuted   Tone = "muted"
)

type PaneKind string

const (
	PaneUpload  PaneKind = "upload"
	PaneEmpty   PaneKind = "empty"
	PanePending PaneKind = "pending"
	PaneStub    PaneKind = "stub"
)

// Action is a button inside a pane. Target is set when pressing it should
// switch tabs.
type Action struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Target Tab    `json:"target,omitempty"`
	Tone   Tone   `json:"tone"`
}

type Pane struct {
	Tab     Tab      `json:"tab"`
	Kind    PaneKind `json:"kind"`
	Heading string   `json:"heading,omitempty"`
	Message string   `json:"message,omitempty"`
	Actions []Action `json:"actions"`
}

type Button struct {
	ID     Tab    `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Tone   Tone   `json:"tone"`
}

type Descriptor struct {
	Active        Tab      `json:"active"`
	Buttons       []Button `json:"buttons"`
	Pane          Pane     `json:"pane"`
	ShowBackToTop bool     `json:"show_back_to_top"`
}

// Render builds the tab strip and the one visible pane. hasTranscript is
// true once an upload has been submitted.
func Render(s State, hasTranscript bool) Descriptor {
	active := s.Active
	if _, ok := labels[active]; !ok {
		active = TabTranscript
	}

	buttons := make([]Button, 0, len(Order))
	for _, t := range Order {
		b := Button{ID: t, Label: t.Label(), Tone: ToneMuted}
		if t == active {
			b.Active = true
			b.Tone = activeTone(t)
		}
		buttons = append(buttons, b)
	}

	return Descriptor{
		Active:        active,
		Buttons:       buttons,
		Pane:          renderPane(active, hasTranscript),
		ShowBackToTop: s.ShowBackToTop,
	}
}

func activeTone(t Tab) Tone {
	if t == TabAskSam {
		return ToneAccent
	}
	return TonePrimary
}

var emptyMessages = map[Tab]string{
	TabFollowUp: "You must first upload a transcript before you can view the follow-up letter",
	TabAskSam:   "You must first upload a transcript before you can ask SAM anything",
}

func renderPane(t Tab, hasTranscript bool) Pane {
	switch t {
	case TabTranscript:
		return Pane{
			Tab:  t,
			Kind: PaneUpload,
			Actions: []Action{
				{ID: "record", Label: "Record", Tone: ToneAccent},
			},
		}
	case TabFollowUp, TabAskSam:
		if hasTranscript {
			return Pane{
				Tab:     t,
				Kind:    PanePending,
				Heading: "Transcript Received",
				Actions: []Action{},
			}
		}
		return Pane{
			Tab:     t,
			Kind:    PaneEmpty,
			Heading: "No Transcript Available",
			Message: emptyMessages[t],
			Actions: []Action{
				{ID: "upload-transcript", Label: "Upload Transcript", Target: TabTranscript, Tone: activeTone(t)},
			},
		}
	default:
		return Pane{Tab: t, Kind: PaneStub, Actions: []Action{}}
	}
}
