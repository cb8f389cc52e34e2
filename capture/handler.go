// SPDX-License-Identifier: EPL-2.0

package capture

import (
	"sync/atomic"

	"github.com/ik5/tonefeed/audio"
	"github.com/ik5/tonefeed/internal/pcm"
	"github.com/ik5/tonefeed/ring"
)

// Tee receives a copy of every mono chunk, e.g. a wav.Recorder.
type Tee interface {
	Write(samples []float32) error
}

// Handler converts device chunks into ring writes. OnData is the malgo data
// callback and runs on the audio thread.
type Handler struct {
	feed     *ring.Feed
	channels int
	tee      Tee

	ints []int16
	mono []float32

	frames  atomic.Uint64
	teeErr  atomic.Pointer[error]
	teeDead atomic.Bool
}

// NewHandler writes frames of the given channel count to feed. tee may be nil.
func NewHandler(feed *ring.Feed, channels int, tee Tee) *Handler {
	return &Handler{
		feed:     feed,
		channels: channels,
		tee:      tee,
	}
}

// OnData handles one chunk of interleaved little-endian int16 frames.
func (h *Handler) OnData(_, input []byte, frameCount uint32) {
	n := min(int(frameCount)*h.channels, len(input)/2)
	if n == 0 {
		return
	}

	if cap(h.ints) < n {
		h.ints = make([]int16, n)
		h.mono = make([]float32, n/h.channels+1)
	}
	ints := h.ints[:n]
	pcm.DecodeInt16LE(ints, input)

	m := audio.DownmixInt16(h.mono, ints, h.channels)
	chunk := h.mono[:m]
	h.feed.Write(chunk)
	h.frames.Add(uint64(m))

	if h.tee != nil && !h.teeDead.Load() {
		if err := h.tee.Write(chunk); err != nil {
			h.teeErr.Store(&err)
			h.teeDead.Store(true)
		}
	}
}

// Frames is the number of mono samples written to the ring.
func (h *Handler) Frames() uint64 { return h.frames.Load() }

// TeeErr is the error that stopped the tee, if any.
func (h *Handler) TeeErr() error {
	if p := h.teeErr.Load(); p != nil {
		return *p
	}
	return nil
}
