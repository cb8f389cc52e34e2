// SPDX-License-Identifier: EPL-2.0

// Package formats opens recordings for replay through the decoder pipeline.
//
// The decoders live in the wav, mp3, vorbis and aiff sub-packages. Registry
// maps file extensions to them and Open picks one from a file name:
//
//	src, err := formats.Open("session.ogg")
//	defer src.Close()
package formats
