// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package shell

import (
	"errors"
	"fmt"
)

var ErrUnknownMenuItem = errors.New("unknown menu item")

// View is one of the mutually exclusive top-level screens.
type View string

const (
	ViewDashboard           View = "dashboard"
	ViewMeetingIntelligence View = "meeting-intelligence"
	ViewTranscript          View = "transcript"
	ViewRecording           View = "recording"
)

var titles = map[View]string{
	ViewDashboard:           "Dashboard",
	ViewMeetingIntelligence: "Meeting Intelligence",
	ViewTranscript:          "Transcript",
	ViewRecording:           "Recording",
}

// ParseView maps any input onto a view. Unknown values fall back to the
// dashboard so navigation never fails.
func ParseView(s string) View {
	v := View(s)
	if _, ok := titles[v]; ok {
		return v
	}
	return ViewDashboard
}

// Title returns the header title for the view.
func (v View) Title() string {
	if t, ok := titles[v]; ok {
		return t
	}
	return titles[ViewDashboard]
}

// MenuItem is an entry in the overlay "more" menu.
type MenuItem string

const (
	MenuMeetingList        MenuItem = "meeting-list"
	MenuMeetingPreparation MenuItem = "meeting-preparation"
	MenuTasks              MenuItem = "tasks"
)

var menuItems = []MenuItem{MenuMeetingList, MenuMeetingPreparation, MenuTasks}

var menuLabels = map[MenuItem]string{
	MenuMeetingList:        "Meeting List",
	MenuMeetingPreparation: "Meeting Preparation",
	MenuTasks:              "Tasks",
}

// ParseMenuItem validates a menu item id.
func ParseMenuItem(s string) (MenuItem, error) {
	item := MenuItem(s)
	if _, ok := menuLabels[item]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMenuItem, s)
	}
	return item, nil
}

// Drag tracks a drawer drag in progress. The zero value is "no drag".
type Drag struct {
	Active   bool    `json:"active"`
	StartY   float64 `json:"start_y"`
	CurrentY float64 `json:"current_y"`
}

// Offset is the downward translation applied to the drawer while dragging.
func (d Drag) Offset() float64 {
	if !d.Active || d.CurrentY < d.StartY {
		return 0
	}
	return d.CurrentY - d.StartY
}

// Swipe tracks a swipe-up on the tab bar. The zero value is "no swipe".
type Swipe struct {
	Active bool    `json:"active"`
	StartY float64 `json:"start_y"`
}

// Policy holds the gesture thresholds in pixels.
type Policy struct {
	DismissThreshold   float64
	SwipeOpenThreshold float64
}

func DefaultPolicy() Policy {
	return Policy{
		DismissThreshold:   80,
		SwipeOpenThreshold: 50,
	}
}

// State is the whole navigation shell for one UI session.
type State struct {
	View         View
	ReturnView   View
	MenuOpen     bool
	Drag         Drag
	Swipe        Swipe
	LastMenuItem MenuItem
}

// New returns the state of a freshly loaded interface.
func New() State {
	return State{
		View:       ViewMeetingIntelligence,
		ReturnView: ViewDashboard,
	}
}

// Navigate selects a top-level view. The menu closes and any gesture in
// flight is dropped. Selecting the recording view while already on it keeps
// the existing return view.
func Navigate(s State, v View) State {
	v = ParseView(string(v))
	if v == ViewRecording {
		if s.View == ViewRecording {
			return CloseMenu(resetSwipe(s))
		}
		return EnterRecordingFrom(s, ViewDashboard)
	}
	s.View = v
	return CloseMenu(resetSwipe(s))
}

// EnterRecordingFrom opens the recording view and remembers where Back
// should return to.
func EnterRecordingFrom(s State, from View) State {
	from = ParseView(string(from))
	if from == ViewRecording {
		from = ViewDashboard
	}
	s.View = ViewRecording
	s.ReturnView = from
	return CloseMenu(resetSwipe(s))
}

// Back returns control to the view that opened the recording page.
func Back(s State) State {
	target := ParseView(string(s.ReturnView))
	if target == ViewRecording {
		target = ViewDashboard
	}
	s.View = target
	s.ReturnView = ViewDashboard
	return CloseMenu(resetSwipe(s))
}

func OpenMenu(s State) State {
	s.MenuOpen = true
	return s
}

func CloseMenu(s State) State {
	s.MenuOpen = false
	s.Drag = Drag{}
	return s
}

func ToggleMenu(s State) State {
	if s.MenuOpen {
		return CloseMenu(s)
	}
	return OpenMenu(s)
}

// SelectMenuItem records the chosen entry and closes the menu.
func SelectMenuItem(s State, item MenuItem) State {
	s.LastMenuItem = item
	return CloseMenu(s)
}

// DragStart begins a drawer drag. Ignored while the menu is closed.
func DragStart(s State, y float64) State {
	if !s.MenuOpen {
		return s
	}
	s.Drag = Drag{Active: true, StartY: y, CurrentY: y}
	return s
}

// DragMove updates the pointer position. Ignored without an active drag.
func DragMove(s State, y float64) State {
	if !s.Drag.Active {
		return s
	}
	s.Drag.CurrentY = y
	return s
}

// DragEnd releases the drawer. It closes when pulled down strictly further
// than the dismiss threshold. Drag state is always cleared.
func DragEnd(s State, p Policy) State {
	if !s.Drag.Active {
		return s
	}
	distance := s.Drag.CurrentY - s.Drag.StartY
	s.Drag = Drag{}
	if distance > p.DismissThreshold {
		return CloseMenu(s)
	}
	return s
}

func SwipeStart(s State, y float64) State {
	s.Swipe = Swipe{Active: true, StartY: y}
	return s
}

// SwipeEnd opens the menu when the finger travelled up strictly further
// than the open threshold.
func SwipeEnd(s State, y float64, p Policy) State {
	if !s.Swipe.Active {
		return s
	}
	distance := s.Swipe.StartY - y
	s = resetSwipe(s)
	if distance > p.SwipeOpenThreshold {
		return OpenMenu(s)
	}
	return s
}

func resetSwipe(s State) State {
	s.Swipe = Swipe{}
	return s
}
