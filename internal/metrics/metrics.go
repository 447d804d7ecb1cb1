// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package metrics records aggregation runs in a prometheus registry.
//
// The command is short lived, so nothing is served over HTTP. The registry
// is written once in the text exposition format, ready for the node
// exporter textfile collector.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the aggregation metrics in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	InputBlocks  prometheus.Counter
	OutputBlocks prometheus.Counter
	InvalidLines prometheus.Counter
	Addresses    prometheus.Gauge
	Duration     prometheus.Histogram
	Runs         *prometheus.CounterVec
}

// NewRecorder creates and registers all metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		InputBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aggip_input_blocks_total",
			Help: "The number of parsed input blocks.",
		}),
		OutputBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aggip_output_blocks_total",
			Help: "The number of blocks after aggregation.",
		}),
		InvalidLines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aggip_invalid_lines_total",
			Help: "The number of skipped input lines that could not be parsed.",
		}),
		Addresses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aggip_covered_addresses",
			Help: "The number of distinct IPv4 addresses covered by the result.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aggip_aggregate_duration_seconds",
			Help:    "The time spent in the aggregation, parsing excluded.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aggip_runs_total",
			Help: "The number of aggregate runs by result.",
		}, []string{"result"}),
	}

	r.registry.MustRegister(
		r.InputBlocks,
		r.OutputBlocks,
		r.InvalidLines,
		r.Addresses,
		r.Duration,
		r.Runs,
	)
	return r
}

// Registry returns the private registry, e.g. for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveAggregation records one aggregation.
func (r *Recorder) ObserveAggregation(in, out int, addrs uint64, took time.Duration) {
	r.InputBlocks.Add(float64(in))
	r.OutputBlocks.Add(float64(out))
	r.Addresses.Set(float64(addrs))
	r.Duration.Observe(took.Seconds())
}

// ObserveRun counts a finished aggregate run.
func (r *Recorder) ObserveRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.Runs.WithLabelValues(result).Inc()
}

// WriteFile writes all metrics to path in the text exposition format.
// The file is written atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "write metrics %s", path)
	}
	return nil
}
