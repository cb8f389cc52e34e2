// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/tonefeed/audio"
	"github.com/ik5/tonefeed/internal/pcm"
)

const channels = 2

// pcmReader is the part of gomp3.Decoder the source needs.
type pcmReader interface {
	io.Reader
	SampleRate() int
}

type source struct {
	dec   pcmReader
	raw   []byte
	ints  []int16
	ended bool
}

func newSource(dec pcmReader) *source {
	return &source{dec: dec, raw: make([]byte, 8192)}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) BufSize() int    { return len(s.raw) / 2 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%channels
	if want == 0 {
		return 0, nil
	}
	if s.ended {
		return 0, io.EOF
	}

	if cap(s.raw) < 2*want {
		s.raw = make([]byte, 2*want)
	}
	if cap(s.ints) < want {
		s.ints = make([]int16, want)
	}

	m, err := io.ReadFull(s.dec, s.raw[:2*want])
	n := pcm.DecodeInt16LE(s.ints[:want], s.raw[:m])
	n -= n % channels
	for i, v := range s.ints[:n] {
		dst[i] = pcm.Int16ToFloat32(v)
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.ended = true
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding mp3: %w", err)
	}
	return n, nil
}

// Decoder reads MPEG-1/2 layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3: %w", err)
	}
	return newSource(dec), nil
}
