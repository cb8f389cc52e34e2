// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes the windowing pipeline counters to Prometheus.
//
// A nil *Collector is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tonefeed"

// Collector holds the pipeline metrics.
type Collector struct {
	windows          prometheus.Counter
	samplesConsumed  prometheus.Counter
	samplesDropped   prometheus.Counter
	overflows        prometheus.Counter
	messages         prometheus.Counter
	payloadMalformed prometheus.Counter
	sinkErrors       prometheus.Counter
	backlog          prometheus.Gauge
	decoderWindow    prometheus.Gauge
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		windows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Analysis windows handed to the decoder",
		}),
		samplesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_consumed_total",
			Help:      "Samples consumed from the ring",
		}),
		samplesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_dropped_total",
			Help:      "Samples lost because the producer outran the consumer",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overflows_total",
			Help:      "Ring overflow events",
		}),
		messages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages delivered to the display",
		}),
		payloadMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payload_malformed_total",
			Help:      "Decoded payloads rejected as malformed",
		}),
		sinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Display failures",
		}),
		backlog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backlog_samples",
			Help:      "Unread samples in the ring after the last pump",
		}),
		decoderWindow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "decoder_max_window",
			Help:      "Last window length requested by the decoder",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.windows, c.samplesConsumed, c.samplesDropped, c.overflows,
		c.messages, c.payloadMalformed, c.sinkErrors, c.backlog, c.decoderWindow,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	return c, nil
}

// Window records one dispatched window of n samples.
func (c *Collector) Window(n int) {
	if c == nil {
		return
	}
	c.windows.Inc()
	c.samplesConsumed.Add(float64(n))
}

// Overflow records one overflow that lost dropped samples.
func (c *Collector) Overflow(dropped uint64) {
	if c == nil {
		return
	}
	c.overflows.Inc()
	c.samplesDropped.Add(float64(dropped))
}

// Message counts a message handed to the display.
func (c *Collector) Message() {
	if c != nil {
		c.messages.Inc()
	}
}

// Malformed counts a rejected payload.
func (c *Collector) Malformed() {
	if c != nil {
		c.payloadMalformed.Inc()
	}
}

// SinkError counts a failed display.
func (c *Collector) SinkError() {
	if c != nil {
		c.sinkErrors.Inc()
	}
}

// Backlog sets the unread sample count.
func (c *Collector) Backlog(n uint64) {
	if c != nil {
		c.backlog.Set(float64(n))
	}
}

// DecoderWindow records the latest decoder demand.
func (c *Collector) DecoderWindow(n int) {
	if c != nil {
		c.decoderWindow.Set(float64(n))
	}
}
