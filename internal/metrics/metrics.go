// Package metrics exposes the Prometheus instrumentation for the PGAS
// runtime substrate: counts of one-sided gets/puts and collectives, so a
// benchmark run can be scraped the same way the teacher CLI exposes its
// per-metric gauges (see cmd/metrics/metrics_server.go in the teacher).
package metrics

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slapgas"

var (
	// RMAGets counts one-sided get operations issued, labeled by mode:
	// "prefetch" (ahead of use), "blocking", or "range" (contiguous range).
	RMAGets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rma_gets_total",
		Help:      "Number of one-sided remote get operations issued.",
	}, []string{"mode"})

	// RMAPuts counts one-sided put operations issued.
	RMAPuts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rma_puts_total",
		Help:      "Number of one-sided remote put operations issued.",
	})

	// Collectives counts barrier/broadcast/allreduce entries, labeled by kind.
	Collectives = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collectives_total",
		Help:      "Number of collective operations entered, by kind.",
	}, []string{"kind"})

	// SpMVDuration records wall-clock time of a full SpMV call, labeled by
	// strategy (naive/single/block/rc).
	SpMVDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "spmv_duration_seconds",
		Help:      "Wall-clock duration of one y = y + A*x application.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"strategy"})
)

var registerOnce = func() func() {
	var done bool
	return func() {
		if done {
			return
		}
		done = true
		prometheus.MustRegister(RMAGets, RMAPuts, Collectives, SpMVDuration)
	}
}()

// Register installs this package's collectors with the default Prometheus
// registry. It is idempotent, matching the teacher's
// addPrometheusMetrics/createPrometheusMetrics guard against double
// registration.
func Register() {
	registerOnce()
}

// ServeHTTP starts a background HTTP server exposing /metrics on addr,
// mirroring the teacher's startPrometheusServer.
func ServeHTTP(addr string) {
	Register()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("starting metrics server", slog.String("address", addr))
	go func() {
		server := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 3 * time.Second,
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()
}
