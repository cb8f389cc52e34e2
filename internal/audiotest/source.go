// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of a frame on a channel.
type Waveform func(frame, channel int) float32

// Source generates a fixed number of frames. It satisfies audio.Source.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform

	// Err, when set, is returned instead of io.EOF once the frames run out.
	Err    error
	Closed bool
}

func NewSource(rate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

func NewSilence(rate, channels, frames int) *Source {
	return NewConstant(rate, channels, frames, 0)
}

func NewConstant(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

// NewSine generates the same sine of amplitude amp on every channel.
func NewSine(rate, channels, frames int, freq, amp float64) *Source {
	return NewSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(amp * math.Sin(2*math.Pi*freq*float64(frame)/float64(rate)))
	})
}

// NewRamp generates frame/scale on every channel.
func NewRamp(rate, channels, frames int, scale float32) *Source {
	return NewSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / scale
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Rewind starts the stream over.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, s.end()
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.wave(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, s.end()
	}
	return n * s.channels, nil
}

func (s *Source) end() error {
	if s.Err != nil {
		return s.Err
	}
	return io.EOF
}
