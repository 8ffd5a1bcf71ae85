// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package recording

import (
	"fmt"
	"time"
)

// DefaultTrialTotal is the recording time included in a free trial.
const DefaultTrialTotal = 5 * time.Hour

// Quota tracks trial recording time.
type Quota struct {
	Total time.Duration
	Used  time.Duration
}

func (q Quota) Remaining() time.Duration {
	if q.Used >= q.Total {
		return 0
	}
	return q.Total - q.Used
}

func (q Quota) Exhausted() bool {
	return q.Remaining() == 0
}

// Debit charges d against the quota. Used never goes below zero.
func (q Quota) Debit(d time.Duration) Quota {
	if d <= 0 {
		return q
	}
	q.Used += d
	return q
}

// PercentRemaining is the share of the trial still available, rounded down.
func (q Quota) PercentRemaining() int {
	if q.Total <= 0 {
		return 0
	}
	return int(q.Remaining() * 100 / q.Total)
}

// Label formats the remaining time the way the trial panel shows it,
// e.g. "4h 23m".
func (q Quota) Label() string {
	return formatHoursMinutes(q.Remaining())
}

func formatHoursMinutes(d time.Duration) string {
	d = d.Truncate(time.Minute)
	h := d / time.Hour
	m := (d - h*time.Hour) / time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
