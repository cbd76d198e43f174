package lsp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level metric vectors, registered once at import time and shared
// by every Server instance in the process — the same pattern used for
// query counters throughout the pack's telemetry code.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vellum_lsp_requests_total",
		Help: "Total JSON-RPC messages handled by method and outcome",
	}, []string{"method", "outcome"})

	recheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vellum_lsp_recheck_duration_seconds",
		Help:    "Wall time of a slow-path re-check (index+resolve+typecheck)",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	diagnosticsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vellum_lsp_diagnostics_published_total",
		Help: "Total diagnostics sent to the client across all publishDiagnostics notifications",
	})

	pendingRequestsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vellum_lsp_pending_requests",
		Help: "Server-issued requests currently awaiting a client reply",
	})
)
