// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV recordings with github.com/go-audio/wav.
//
// Decoder accepts PCM files of 16, 24 or 32 bits and any channel count:
//
//	f, _ := os.Open("capture.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Recorder writes a mono float stream as 16-bit PCM. The capture path uses
// it to keep a copy of what the decoder heard:
//
//	rec, err := wav.Create("capture.wav", 44100)
//	rec.Write(samples)
//	rec.Close()
//
// go-audio needs to seek, so a reader that is not an io.ReadSeeker is read
// into memory first.
package wav
