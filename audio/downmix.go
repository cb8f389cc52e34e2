// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/tonefeed/internal/pcm"

// DownmixInt16 averages interleaved signed 16-bit frames into mono samples
// scaled by 1/32768. It writes min(len(src)/channels, len(dst)) samples and
// returns that count. A trailing partial frame is ignored.
func DownmixInt16(dst []float32, src []int16, channels int) int {
	if channels <= 0 {
		return 0
	}
	frames := min(len(src)/channels, len(dst))

	if channels == 1 {
		for i := range frames {
			dst[i] = pcm.Int16ToFloat32(src[i])
		}
		return frames
	}

	scale := 1 / (pcm.Int16Scale * float32(channels))
	for f := range frames {
		var sum int32
		for _, s := range src[f*channels : (f+1)*channels] {
			sum += int32(s)
		}
		dst[f] = float32(sum) * scale
	}
	return frames
}

// downmix averages interleaved float frames; see DownmixInt16.
func downmix(dst, src []float32, channels int) int {
	frames := min(len(src)/channels, len(dst))

	switch channels {
	case 1:
		copy(dst, src[:frames])
	case 2:
		for f := range frames {
			dst[f] = (src[2*f] + src[2*f+1]) * 0.5
		}
	default:
		inv := 1 / float32(channels)
		for f := range frames {
			var sum float32
			for _, s := range src[f*channels : (f+1)*channels] {
				sum += s
			}
			dst[f] = sum * inv
		}
	}
	return frames
}
