// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/tonefeed/internal/audiotest"
)

func TestMonoMixer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		wave     audiotest.Waveform
		want     float32
	}{
		{name: "mono passthrough", channels: 1, wave: func(int, int) float32 { return 0.5 }, want: 0.5},
		{name: "stereo", channels: 2, wave: func(_, c int) float32 { return []float32{0.4, 0.6}[c] }, want: 0.5},
		{name: "quad", channels: 4, wave: func(_, c int) float32 { return float32(c) * 0.1 }, want: 0.15},
		{name: "six channels", channels: 6, wave: func(_, c int) float32 { return float32(c) }, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMonoMixer(audiotest.NewSource(8000, tt.channels, 100, tt.wave))
			if m.Channels() != 1 || m.SampleRate() != 8000 {
				t.Errorf("mixer reports %d ch at %d Hz", m.Channels(), m.SampleRate())
			}

			got, err := ReadAll(m, 32)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(got) != 100 {
				t.Fatalf("read %d samples, want 100", len(got))
			}
			for i, v := range got {
				if math.Abs(float64(v-tt.want)) > 1e-5 {
					t.Fatalf("sample %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOFWithData(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.NewConstant(8000, 2, 5, 0.25))
	buf := make([]float32, 10)

	n, err := m.ReadSamples(buf)
	if n != 5 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 5, EOF", n, err)
	}
	n, err = m.ReadSamples(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = %d, %v; want 0, EOF", n, err)
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.NewConstant(8000, 2, 5, 0.25))
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilence(8000, 2, 1)
	if err := NewMonoMixer(src).Close(); err != nil || !src.Closed {
		t.Errorf("Close() = %v, source closed = %v", err, src.Closed)
	}
}
