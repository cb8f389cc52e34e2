// SPDX-License-Identifier: EPL-2.0

// Package capture is the producer side of the ring: it records from an
// audio input device with github.com/gen2brain/malgo and writes mono
// samples into a ring.Feed.
//
// The device delivers interleaved signed 16-bit frames. Each callback chunk
// is downmixed with audio.DownmixInt16 and written with a single
// ring.Feed.Write call, so the consumer sees whole chunks. The callback never
// blocks and never waits for the consumer.
//
//	dev, err := capture.Open(feed, capture.Config{SampleRate: 44100, Channels: 1})
//	if err != nil { ... }
//	defer dev.Stop()
//	dev.Start()
package capture
