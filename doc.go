// SPDX-License-Identifier: EPL-2.0

// Package tonefeed feeds audio to an acoustic data decoder.
//
// A producer (a capture device or a decoded recording) writes mono float32
// samples into a ring.Feed. A dispatch.Dispatcher reads the feed and hands
// the decoder windows no longer than it asks for, never splitting a window
// across the ring boundary. When the decoder completes a message, its
// payload is parsed into identity and body fields and shown on a display.
//
// # Packages
//
//   - config derives window, gate and tone parameters from a profile
//   - ring holds the single producer, single consumer sample ring
//   - dispatch sizes and delivers analysis windows
//   - payload parses the typed fields of a decoded message
//   - display shows messages on a console, a serial line or MQTT
//   - capture reads a microphone through malgo
//   - formats decodes WAV, AIFF, MP3 and Ogg Vorbis recordings
//   - probe is a tone level decoder driven by the configuration
//
// # Replay
//
// DecodeSource runs a recording through the same ring and dispatcher as a
// live capture:
//
//	src, _ := formats.Open("message.wav")
//	defer src.Close()
//
//	cfg, _ := config.Audible(44100)
//	dec, _ := probe.New(cfg, probe.DefaultTones)
//	stats, err := tonefeed.DecodeSource(src, cfg, dec, display.NewWriter(os.Stdout), tonefeed.Options{})
//
// The source is resampled to the configured rate and mixed down to mono
// before it reaches the ring.
package tonefeed
