// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Mono returns src as a single channel stream at rate, adding a MonoMixer
// and a Resampler only when needed.
func Mono(src Source, rate int) (Source, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: source rate %d", ErrInvalidSampleRate, src.SampleRate())
	}
	if src.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, src.Channels())
	}

	out := src
	if out.Channels() != 1 {
		out = NewMonoMixer(out)
	}
	if out.SampleRate() != rate {
		out = NewResampler(out, rate)
	}
	return out, nil
}

// ReadAll drains src with reads of bufSize samples.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	buf := make([]float32, max(bufSize, src.Channels()))
	buf = buf[:len(buf)-len(buf)%src.Channels()]

	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
