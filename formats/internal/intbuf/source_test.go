// SPDX-License-Identifier: EPL-2.0

package intbuf

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type fakeReader struct {
	format *goaudio.Format
	data   []int
	err    error
}

func (f *fakeReader) Format() *goaudio.Format { return f.format }

func (f *fakeReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, f.data)
	f.data = f.data[n:]
	if len(f.data) == 0 && f.err != nil {
		return n, f.err
	}
	return n, nil
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		data     []int
		want     []float32
	}{
		{name: "16 bit", bitDepth: 16, data: []int{0, 16384, -32768, 32767}, want: []float32{0, 0.5, -1, 32767.0 / 32768}},
		{name: "24 bit", bitDepth: 24, data: []int{4194304, -8388608}, want: []float32{0.5, -1}},
		{name: "32 bit", bitDepth: 32, data: []int{-1 << 30, 1 << 30}, want: []float32{-0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			format := &goaudio.Format{NumChannels: 2, SampleRate: 8000}
			s := New(&fakeReader{format: format, data: tt.data}, format, tt.bitDepth)

			dst := make([]float32, 16)
			n, err := s.ReadSamples(dst)
			if n != len(tt.want) || !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples() = %d, %v; want %d, EOF", n, err, len(tt.want))
			}
			for i, w := range tt.want {
				if dst[i] != w {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], w)
				}
			}

			if n, err := s.ReadSamples(dst); n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("ReadSamples() after end = %d, %v", n, err)
			}
		})
	}
}

func TestSource_WholeFrames(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 2, SampleRate: 8000}
	s := New(&fakeReader{format: format, data: make([]int, 10)}, format, 16)

	n, err := s.ReadSamples(make([]float32, 5))
	if n != 4 || err != nil {
		t.Errorf("ReadSamples(5) = %d, %v; want 4 values", n, err)
	}
	if n, err := s.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v; want nothing", n, err)
	}
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 1, SampleRate: 8000}
	s := New(&fakeReader{format: format, data: []int{1, 2}, err: io.ErrUnexpectedEOF}, format, 16)

	n, err := s.ReadSamples(make([]float32, 8))
	if n != 2 || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() = %d, %v; want 2 and the reader error", n, err)
	}
}

func TestSource_SampleMapping(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 1, SampleRate: 8000}
	s := New(&fakeReader{format: format, data: []int{0, 64, 192, 128}}, format, 8)
	s.Sample = func(v int) int { return int(int8(uint8(v))) }

	dst := make([]float32, 4)
	if n, err := s.ReadSamples(dst); n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v", n, err)
	}
	want := []float32{0, 0.5, -0.5, -1}
	for i, w := range want {
		if dst[i] != w {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], w)
		}
	}
}
