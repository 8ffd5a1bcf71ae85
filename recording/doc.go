// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package recording is the consent-gated recording session and the trial quota.

# Phases

	no_consent → denied            RequestConsent(false)
	no_consent → recording         RequestConsent(true)
	recording  ⇄ paused            TogglePause
	recording|paused → no_consent  Stop (counters reset)
	recording|paused → failed      Fail
	denied|failed → no_consent     Retry

Anything else returns ErrInvalidTransition.

# Elapsed Time

There is no ticker. Elapsed is computed from the running segment start and
the time banked by pauses, so any read at any moment is exact:

	elapsed := s.Elapsed(time.Now())

# Trial Quota

Stopped (and failed) sessions are charged against a Quota. The trial panel
shows the remaining time ("4h 23m") and the share left as a percentage.
*/
package recording
