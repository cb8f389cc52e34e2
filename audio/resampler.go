// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/tonefeed/internal/pcm"
)

// lowpassAlpha is the one-pole smoothing applied to the input when
// downsampling.
const lowpassAlpha = 0.5

// Resampler converts src to another sample rate with cubic interpolation.
// The channel count is kept. A source of N frames yields ceil(N*rate/srcRate)
// frames.
type Resampler struct {
	src      Source
	srcRate  int64
	rate     int64
	channels int

	// hist holds source frames k-1, k, k+1, k+2. Output frame j sits at
	// source position j*srcRate/rate, between hist[1] and hist[2].
	hist   [4][]float32
	k      int64
	out    int64
	read   int64 // real frames pulled from src
	primed bool

	in           []float32
	inPos, inLen int
	srcEOF       bool

	lowpass []float32 // filter state, nil when not downsampling
}

// NewResampler converts src to rate Hz.
func NewResampler(src Source, rate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		rate:     int64(rate),
		channels: channels,
		in:       make([]float32, 1024*channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}
	if r.srcRate > r.rate {
		r.lowpass = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return int(r.rate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// next copies the next source frame into dst. It returns false at the end
// of the stream.
func (r *Resampler) next(dst []float32) (bool, error) {
	for r.inPos == r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		n -= n % r.channels
		r.inPos, r.inLen = 0, n

		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("reading resampler source: %w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lowpass != nil {
		if r.read == 0 {
			copy(r.lowpass, dst)
		}
		for c := range dst {
			dst[c] = lowpassAlpha*dst[c] + (1-lowpassAlpha)*r.lowpass[c]
			r.lowpass[c] = dst[c]
		}
	}

	r.read++
	return true, nil
}

// fill reads the next frame into hist[i], repeating the previous frame once
// the source is exhausted.
func (r *Resampler) fill(i int) error {
	ok, err := r.next(r.hist[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[i], r.hist[i-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.next(r.hist[1])
	if err != nil || !ok {
		return err
	}
	copy(r.hist[0], r.hist[1])

	if err := r.fill(2); err != nil {
		return err
	}
	return r.fill(3)
}

func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	r.hist[3] = first
	r.k++
	return r.fill(3)
}

// ReadSamples fills dst with interleaved frames at the target rate.
// len(dst) must be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		num := r.out * r.srcRate
		for r.k < num/r.rate {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if r.k >= r.read {
			return written * r.channels, io.EOF
		}

		x := float32(float64(num%r.rate) / float64(r.rate))
		frame := dst[written*r.channels : (written+1)*r.channels]
		for c := range frame {
			frame[c] = pcm.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.out++
	}

	return written * r.channels, nil
}
