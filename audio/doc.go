// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample stream primitives shared by the capture and
// replay paths.
//
// Samples are float32 in [-1, 1], interleaved by channel. A Source yields
// them in chunks:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// The tone decoder works on a single channel at the configured sample rate.
// Mono chains a MonoMixer and a Resampler in front of any Source as needed:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	mono, err := audio.Mono(src, 44100)
//
// Hardware capture delivers signed 16-bit interleaved frames instead;
// DownmixInt16 averages them into mono samples scaled by 1/32768, one call
// per hardware chunk.
//
// # Format Registry
//
// A Registry maps a format key to a Decoder so that recordings can be opened
// by extension:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	src, err := reg.Decode("wav", f)
//
// # End of Stream
//
// ReadSamples returns io.EOF, possibly together with the last samples, when
// the stream is finished. Any other error is a read failure.
package audio
