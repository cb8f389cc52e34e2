// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 recordings with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo 16-bit PCM, so every Source from
// this package has two channels; audio.Mono folds them down.
package mp3
