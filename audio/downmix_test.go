// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestDownmixInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      []int16
		channels int
		dstLen   int
		want     []float32
	}{
		{name: "mono", src: []int16{0, 16384, -16384, -32768}, channels: 1, dstLen: 4, want: []float32{0, 0.5, -0.5, -1}},
		{name: "stereo", src: []int16{16384, 0, -32768, 32767}, channels: 2, dstLen: 2, want: []float32{0.25, -1.0 / 65536}},
		{name: "partial frame ignored", src: []int16{8192, 8192, 100}, channels: 2, dstLen: 4, want: []float32{0.25}},
		{name: "short dst", src: []int16{1, 2, 3, 4}, channels: 1, dstLen: 2, want: []float32{1.0 / 32768, 2.0 / 32768}},
		{name: "three channels", src: []int16{3000, 6000, 9000}, channels: 3, dstLen: 1, want: []float32{6000.0 / 32768}},
		{name: "no channels", src: []int16{1, 2}, channels: 0, dstLen: 2, want: []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]float32, tt.dstLen)
			n := DownmixInt16(dst, tt.src, tt.channels)
			if n != len(tt.want) {
				t.Fatalf("DownmixInt16() = %d, want %d", n, len(tt.want))
			}
			for i, w := range tt.want {
				if math.Abs(float64(dst[i]-w)) > 1e-6 {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], w)
				}
			}
		})
	}
}

func TestDownmix_Float(t *testing.T) {
	t.Parallel()

	src := []float32{0.4, 0.6, -1, 1, 0.2, 0.2}
	dst := make([]float32, 3)

	if n := downmix(dst, src, 2); n != 3 {
		t.Fatalf("downmix() = %d, want 3", n)
	}
	want := []float32{0.5, 0, 0.2}
	for i := range want {
		if math.Abs(float64(dst[i]-want[i])) > 1e-6 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}
