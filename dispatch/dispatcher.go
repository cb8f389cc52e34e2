// SPDX-License-Identifier: EPL-2.0

package dispatch

import (
	"context"
	"log"
	"time"

	"github.com/ik5/tonefeed/metrics"
	"github.com/ik5/tonefeed/payload"
	"github.com/ik5/tonefeed/ring"
)

// Stats summarizes one Pump call.
type Stats struct {
	Windows   int
	Samples   int
	Messages  int
	Malformed int
	Dropped   uint64
}

func (s *Stats) add(o Stats) {
	s.Windows += o.Windows
	s.Samples += o.Samples
	s.Messages += o.Messages
	s.Malformed += o.Malformed
	s.Dropped += o.Dropped
}

// Dispatcher is the consumer side of a ring.Feed.
// It must only be used from one goroutine.
type Dispatcher struct {
	feed    *ring.Feed
	decoder Decoder
	sink    payload.Sink

	// Logger defaults to log.Default().
	Logger *log.Logger
	// Metrics may be nil.
	Metrics *metrics.Collector
	// OnLoss, when set, is called with the number of samples lost to an overflow.
	OnLoss func(dropped uint64)

	lastMaxWindow int
	total         Stats
}

// New creates a Dispatcher reading feed into decoder. sink may be nil when
// decoded messages are not needed.
func New(feed *ring.Feed, decoder Decoder, sink payload.Sink) *Dispatcher {
	return &Dispatcher{
		feed:    feed,
		decoder: decoder,
		sink:    sink,
	}
}

func (d *Dispatcher) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// LastMaxWindow is the decoder demand seen by the latest iteration.
func (d *Dispatcher) LastMaxWindow() int { return d.lastMaxWindow }

// Total is the sum of every Pump so far.
func (d *Dispatcher) Total() Stats { return d.total }

// Pump dispatches windows until no more can be sent without new data.
func (d *Dispatcher) Pump() Stats {
	var st Stats

	for {
		// The producer may lap the consumer while the decoder is busy.
		if d.feed.Overflowed() {
			st.Dropped += d.resync()
		}
		if d.feed.Available() == 0 {
			break
		}

		maxWindow := max(d.decoder.MaxWindowLength(), 0)
		d.lastMaxWindow = maxWindow
		d.Metrics.DecoderWindow(maxWindow)

		cursor := d.feed.ConsumeCursor()
		length := min(uint64(maxWindow), d.feed.Available(), uint64(d.feed.ContiguousRun(cursor)))
		if length == 0 {
			break
		}

		n := int(length)
		if d.decoder.PushWindow(d.feed.Window(n)) {
			d.handleMessage(&st)
		}
		d.feed.Consume(n)

		st.Windows++
		st.Samples += n
		d.Metrics.Window(n)
	}

	d.Metrics.Backlog(d.feed.Available())
	d.total.add(st)
	return st
}

func (d *Dispatcher) resync() uint64 {
	dropped := d.feed.Resync()
	if dropped == 0 {
		return 0
	}

	d.logger().Printf("dispatch: ring overflow, dropped %d samples (capacity %d)", dropped, d.feed.Capacity())
	d.Metrics.Overflow(dropped)
	if d.OnLoss != nil {
		d.OnLoss(dropped)
	}
	return dropped
}

func (d *Dispatcher) handleMessage(st *Stats) {
	data := d.decoder.Payload()

	msg, ok, err := payload.Extract(data, len(data))
	if err != nil {
		st.Malformed++
		d.Metrics.Malformed()
		d.logger().Printf("dispatch: dropping message: %v", err)
		return
	}
	if !ok {
		d.logger().Printf("dispatch: message of %d bytes has no identity or body", len(data))
		return
	}

	st.Messages++
	d.Metrics.Message()
	if d.sink == nil {
		return
	}
	if err := d.sink.Display(msg); err != nil {
		d.Metrics.SinkError()
		d.logger().Printf("dispatch: display failed: %v", err)
	}
}

// Run pumps every interval until ctx is done, then pumps once more to
// drain what the producer already wrote.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) Stats {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Pump()
			return d.total
		case <-ticker.C:
			d.Pump()
		}
	}
}
