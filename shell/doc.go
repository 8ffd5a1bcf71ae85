// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package shell models the navigation chrome: the selected top-level view, the
bottom tab bar and the overlay "more" menu.

# Views

Four views are mutually exclusive:

	dashboard, meeting-intelligence, transcript, recording

ParseView never fails. Unknown input falls back to the dashboard.

# Transitions

All transitions are pure functions over State:

	s = shell.Navigate(s, shell.ViewTranscript)
	s = shell.ToggleMenu(s)
	s = shell.DragStart(s, 400)
	s = shell.DragMove(s, 490)
	s = shell.DragEnd(s, policy) // closed: pulled 90px > 80px

Opening the menu is idempotent. Closing it clears any drag in flight.

# Gestures

The drawer closes when dragged down strictly further than
Policy.DismissThreshold. A swipe up on the tab bar strictly further than
Policy.SwipeOpenThreshold opens it. Gesture state resets on release.

# Rendering

Render turns State into a Descriptor: title, header badges, pane, tab bar
buttons with tones and the menu with its current drag offset.
*/
package shell
