// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/tonefeed/audio"
)

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input io.Reader
	}{
		{name: "empty", input: bytes.NewReader(nil)},
		{name: "text", input: bytes.NewReader([]byte("this is not an aiff file at all"))},
		{name: "wav header", input: bytes.NewReader([]byte("RIFF\x24\x00\x00\x00WAVEfmt "))},
		{name: "not seekable", input: io.MultiReader(bytes.NewReader([]byte("nope")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(tt.input); !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func writeFixture(t *testing.T, rate, bitDepth, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := goaiff.NewEncoder(f, rate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           append([]int(nil), data...),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		data     []int
		want     []float32
	}{
		{"8-bit", 8, []int{0, 64, -64, 127, -128}, []float32{0, 0.5, -0.5, 127.0 / 128, -1}},
		{"16-bit", 16, []int{0, 16384, -16384, 32767, -32768}, []float32{0, 0.5, -0.5, 32767.0 / 32768, -1}},
		{"24-bit", 24, []int{0, 1 << 22, -(1 << 22), -(1 << 23)}, []float32{0, 0.5, -0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := os.Open(writeFixture(t, 8000, tt.bitDepth, 1, tt.data))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			src, err := (Decoder{}).Decode(f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != 8000 || src.Channels() != 1 {
				t.Errorf("source is %d ch at %d Hz", src.Channels(), src.SampleRate())
			}

			got, err := audio.ReadAll(src, 3)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if math.Abs(float64(got[i]-want)) > 1e-6 {
					t.Errorf("sample %d = %v, want %v", i, got[i], want)
				}
				if got[i] < -1 || got[i] > 1 {
					t.Errorf("sample %d = %v out of [-1, 1]", i, got[i])
				}
			}
		})
	}
}
