// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between integer PCM and normalized float32 samples.
package pcm

import (
	"encoding/binary"
	"math"
)

// Int16Scale maps a signed 16-bit sample to [-1, 1).
const Int16Scale = 32768

// Int16ToFloat32 scales s to [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / Int16Scale
}

// Float32ToInt16 is the inverse of Int16ToFloat32, rounding to the nearest
// step and clamping out of range values.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * Int16Scale)
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// DecodeInt16LE reads little-endian signed 16-bit samples from b into dst
// and returns how many were decoded. A trailing odd byte is ignored.
func DecodeInt16LE(dst []int16, b []byte) int {
	n := min(len(dst), len(b)/2)
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return n
}

// IntToFloat32 scales a sample of the given bit depth to [-1, 1).
func IntToFloat32(s int, bitDepth int) float32 {
	return float32(float64(s) / float64(int64(1)<<(bitDepth-1)))
}

// Float32ToInt scales a normalized sample to the given bit depth.
func Float32ToInt(x float32, bitDepth int) int {
	full := float64(int64(1) << (bitDepth - 1))
	v := math.Round(float64(x) * full)
	return int(max(-full, min(full-1, v)))
}

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x,
// where x in [0, 1] is the position between y1 and y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
