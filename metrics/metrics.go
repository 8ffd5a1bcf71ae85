// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the prometheus collectors for the UI state server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meeting_intel"

type Metrics struct {
	TransitionsTotal *prometheus.CounterVec
	RejectedTotal    *prometheus.CounterVec
	SessionsCreated  prometheus.Counter
	UploadBytes      prometheus.Histogram
	RecordedSeconds  prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "State transitions applied, by machine and event",
			},
			[]string{"machine", "event"},
		),
		RejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_transitions_total",
				Help:      "Events refused because the machine was in the wrong state",
			},
			[]string{"machine", "event"},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_created_total",
				Help:      "UI sessions created",
			},
		),
		UploadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upload_bytes",
				Help:      "Size of files placed in the upload slot",
				Buckets:   prometheus.ExponentialBuckets(1024, 8, 8),
			},
		),
		RecordedSeconds: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recorded_seconds_total",
				Help:      "Recording time charged against trial quotas",
			},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status code",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
	}
}

// The helpers below accept a nil receiver so handlers built without
// metrics keep working.

func (m *Metrics) Transition(machine, event string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(machine, event).Inc()
}

func (m *Metrics) Reject(machine, event string) {
	if m == nil {
		return
	}
	m.RejectedTotal.WithLabelValues(machine, event).Inc()
}

func (m *Metrics) SessionCreated() {
	if m == nil {
		return
	}
	m.SessionsCreated.Inc()
}

func (m *Metrics) ObserveUpload(size int64) {
	if m == nil {
		return
	}
	m.UploadBytes.Observe(float64(size))
}

func (m *Metrics) ObserveRecorded(d time.Duration) {
	if m == nil || d <= 0 {
		return
	}
	m.RecordedSeconds.Add(d.Seconds())
}

func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(d.Seconds())
}
