// SPDX-License-Identifier: EPL-2.0

package tonefeed

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ik5/tonefeed/audio"
	"github.com/ik5/tonefeed/config"
	"github.com/ik5/tonefeed/dispatch"
	"github.com/ik5/tonefeed/metrics"
	"github.com/ik5/tonefeed/payload"
	"github.com/ik5/tonefeed/ring"
)

const (
	DefaultRingCapacity = 1 << 16
	DefaultChunkSize    = 4096
)

// Options tune DecodeSource. The zero value is usable.
type Options struct {
	// RingCapacity is the ring size in samples.
	RingCapacity int
	// ChunkSize is the number of samples written to the ring between pumps,
	// capped to RingCapacity.
	ChunkSize int

	Logger  *log.Logger
	Metrics *metrics.Collector
	// Tee, when set, receives every mono chunk before it enters the ring.
	Tee interface {
		Write(samples []float32) error
	}
}

func (o Options) withDefaults() Options {
	if o.RingCapacity <= 0 {
		o.RingCapacity = DefaultRingCapacity
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	o.ChunkSize = min(o.ChunkSize, o.RingCapacity)
	return o
}

// DecodeSource plays src into decoder at cfg's sample rate and delivers the
// completed messages to sink, which may be nil. The dispatcher pumps after
// every chunk, so a decoder that keeps asking for samples never loses any.
// src is not closed.
func DecodeSource(src audio.Source, cfg config.Configuration, decoder dispatch.Decoder, sink payload.Sink, opts Options) (dispatch.Stats, error) {
	if err := cfg.Validate(); err != nil {
		return dispatch.Stats{}, err
	}
	opts = opts.withDefaults()

	mono, err := audio.Mono(src, int(cfg.SampleRate))
	if err != nil {
		return dispatch.Stats{}, fmt.Errorf("preparing source: %w", err)
	}

	feed, err := ring.New(opts.RingCapacity)
	if err != nil {
		return dispatch.Stats{}, err
	}

	d := dispatch.New(feed, decoder, sink)
	d.Logger = opts.Logger
	d.Metrics = opts.Metrics

	buf := make([]float32, opts.ChunkSize)
	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			if opts.Tee != nil {
				if terr := opts.Tee.Write(buf[:n]); terr != nil {
					return d.Total(), fmt.Errorf("writing tee: %w", terr)
				}
			}
			feed.Write(buf[:n])
			d.Pump()
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return d.Total(), fmt.Errorf("reading source: %w", err)
		}
	}

	return d.Total(), nil
}
