// Taste-Kid - Personalized Movie Discovery Engine
// Copyright 2026 Taste-Kid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastekid/tastekid

// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tastekid",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern, and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tastekid",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	storeQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tastekid",
		Subsystem: "store",
		Name:      "query_duration_seconds",
		Help:      "Store query latency by operation.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation"})

	indexBreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tastekid",
		Subsystem: "index",
		Name:      "breaker_state",
		Help:      "Vector index circuit breaker state (0 closed, 1 half-open, 2 open).",
	})
)

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveStoreQuery records one store query duration.
func ObserveStoreQuery(operation string, duration time.Duration) {
	storeQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetIndexBreakerState updates the breaker state gauge.
func SetIndexBreakerState(state float64) {
	indexBreakerState.Set(state)
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
