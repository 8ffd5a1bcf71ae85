// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

// Tone is a presentation hint the client maps to its own styling.
type Tone string

const (
	ToneActive Tone = "active"
	ToneIdle   Tone = "idle"
	ToneCreate Tone = "create"
)

type Badge string

const (
	BadgeInfo    Badge = "info"
	BadgeWarning Badge = "warning"
)

type BarButton struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Target View   `json:"target,omitempty"`
	Active bool   `json:"active"`
	Tone   Tone   `json:"tone"`
}

type MenuEntry struct {
	ID    MenuItem `json:"id"`
	Label string   `json:"label"`
}

type MenuDescriptor struct {
	Open     bool        `json:"open"`
	Offset   float64     `json:"offset"`
	Dragging bool        `json:"dragging"`
	Items    []MenuEntry `json:"items"`
	LastItem MenuItem    `json:"last_item,omitempty"`
}

// Descriptor is everything the client needs to draw the chrome.
type Descriptor struct {
	View   View           `json:"view"`
	Title  string         `json:"title"`
	Badges []Badge        `json:"badges"`
	Pane   View           `json:"pane"`
	TabBar []BarButton    `json:"tab_bar"`
	Menu   MenuDescriptor `json:"menu"`
}

var tabBar = []struct {
	id     string
	label  string
	target View
}{
	{"dashboard", "Dashboard", ViewDashboard},
	{"transcript", "Transcript", ViewTranscript},
	{"create", "Create", ViewRecording},
	{"meetings", "Meetings", ViewMeetingIntelligence},
	{"more", "More", ""},
}

func Render(s State) Descriptor {
	view := ParseView(string(s.View))

	badges := []Badge{}
	if view == ViewMeetingIntelligence {
		badges = append(badges, BadgeInfo, BadgeWarning)
	}

	buttons := make([]BarButton, 0, len(tabBar))
	for _, b := range tabBar {
		btn := BarButton{ID: b.id, Label: b.label, Target: b.target, Tone: ToneIdle}
		switch b.id {
		case "create":
			// The create button keeps its accent and never shows as selected.
			btn.Tone = ToneCreate
		case "more":
			btn.Active = s.MenuOpen
		default:
			btn.Active = view == b.target
		}
		if btn.Active {
			btn.Tone = ToneActive
		}
		buttons = append(buttons, btn)
	}

	items := make([]MenuEntry, 0, len(menuItems))
	for _, item := range menuItems {
		items = append(items, MenuEntry{ID: item, Label: menuLabels[item]})
	}

	return Descriptor{
		View:   view,
		Title:  view.Title(),
		Badges: badges,
		Pane:   view,
		TabBar: buttons,
		Menu: MenuDescriptor{
			Open:     s.MenuOpen,
			Offset:   s.Drag.Offset(),
			Dragging: s.Drag.Active,
			Items:    items,
			LastItem: s.LastMenuItem,
		},
	}
}
