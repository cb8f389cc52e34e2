// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Window(100)
	c.Window(28)
	c.Overflow(7)
	c.Message()
	c.Malformed()
	c.Malformed()
	c.SinkError()
	c.Backlog(42)
	c.DecoderWindow(1920)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"windows", testutil.ToFloat64(c.windows), 2},
		{"samples consumed", testutil.ToFloat64(c.samplesConsumed), 128},
		{"samples dropped", testutil.ToFloat64(c.samplesDropped), 7},
		{"overflows", testutil.ToFloat64(c.overflows), 1},
		{"messages", testutil.ToFloat64(c.messages), 1},
		{"malformed", testutil.ToFloat64(c.payloadMalformed), 2},
		{"sink errors", testutil.ToFloat64(c.sinkErrors), 1},
		{"backlog", testutil.ToFloat64(c.backlog), 42},
		{"decoder window", testutil.ToFloat64(c.decoderWindow), 1920},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if n, err := testutil.GatherAndCount(reg); err != nil || n != 9 {
		t.Errorf("GatherAndCount() = %d, %v; want 9", n, err)
	}
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	if _, err := New(reg); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := New(reg); err == nil {
		t.Error("second New() on the same registry should fail")
	}
}

func TestCollector_Nil(t *testing.T) {
	t.Parallel()

	var c *Collector
	c.Window(1)
	c.Overflow(1)
	c.Message()
	c.Malformed()
	c.SinkError()
	c.Backlog(1)
	c.DecoderWindow(1)
}
