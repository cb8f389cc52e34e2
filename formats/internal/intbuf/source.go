// SPDX-License-Identifier: EPL-2.0

// Package intbuf adapts go-audio PCM decoders to audio.Source.
package intbuf

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/tonefeed/internal/pcm"
)

// Reader is the PCM side of the go-audio wav and aiff decoders.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads signed integer PCM of a fixed bit depth.
type Source struct {
	r        Reader
	format   *goaudio.Format
	bitDepth int
	buf      goaudio.IntBuffer
	done     bool

	// Sample, when set, maps a raw decoder value to a signed sample of
	// bitDepth bits before it is scaled.
	Sample func(v int) int
}

// New reads from r. format must describe the stream.
func New(r Reader, format *goaudio.Format, bitDepth int) *Source {
	return &Source{
		r:        r,
		format:   format,
		bitDepth: bitDepth,
		buf: goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 0, 4096),
			SourceBitDepth: bitDepth,
		},
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.format.NumChannels
	if want == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.r.PCMBuffer(&s.buf)
	n = max(0, min(n, want))
	for i, v := range s.buf.Data[:n] {
		if s.Sample != nil {
			v = s.Sample(v)
		}
		dst[i] = pcm.IntToFloat32(v, s.bitDepth)
	}

	// The decoders signal the end of the data chunk with a short read,
	// sometimes together with io.EOF.
	if errors.Is(err, io.EOF) || (err == nil && n < want) {
		s.done = true
		return n, io.EOF
	}
	if err != nil {
		s.done = true
		return n, fmt.Errorf("reading pcm: %w", err)
	}
	return n, nil
}
