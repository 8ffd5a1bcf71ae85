// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabs

import (
	"errors"
	"fmt"
)

var ErrUnknownTab = errors.New("unknown tab")

// Tab is one of the panes inside the meeting-intelligence view.
type Tab string

const (
	TabTranscript Tab = "transcript"
	TabSummary    Tab = "summary"
	TabFollowUp   Tab = "followup"
	TabAnalytics  Tab = "analytics"
	TabCoaching   Tab = "coaching"
	TabAskSam     Tab = "asksam"
)

// Order is the left-to-right order of the tab buttons.
var Order = []Tab{TabTranscript, TabSummary, TabFollowUp, TabAnalytics, TabCoaching, TabAskSam}

var labels = map[Tab]string{
	TabTranscript: "Transcript",
	TabSummary:    "Meeting Summary",
	TabFollowUp:   "Follow-up Letter",
	TabAnalytics:  "Analytics",
	TabCoaching:   "Coaching",
	TabAskSam:     "Ask SAM",
}

func ParseTab(id string) (Tab, error) {
	t := Tab(id)
	if _, ok := labels[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTab, id)
	}
	return t, nil
}

func (t Tab) Label() string {
	return labels[t]
}

type Policy struct {
	BackToTopThreshold float64
}

func DefaultPolicy() Policy {
	return Policy{BackToTopThreshold: 200}
}

type State struct {
	Active        Tab
	ScrollY       float64
	ShowBackToTop bool
}

func New() State {
	return State{Active: TabTranscript}
}

// SetActive swaps the visible pane.
func SetActive(s State, t Tab) State {
	s.Active = t
	return s
}

// Scroll records the page offset and decides whether the back-to-top
// button is visible.
func Scroll(s State, y float64, p Policy) State {
	if y < 0 {
		y = 0
	}
	s.ScrollY = y
	s.ShowBackToTop = y > p.BackToTopThreshold
	return s
}
