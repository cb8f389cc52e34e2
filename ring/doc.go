// SPDX-License-Identifier: EPL-2.0

// Package ring provides Feed, a fixed-capacity circular buffer of normalized
// audio samples shared by one producer and one consumer.
//
// The producer, usually an audio device callback, appends with Write. The
// consumer inspects Available and ContiguousRun, reads a contiguous Window
// and releases it with Consume:
//
//	feed, _ := ring.New(1 << 16)
//
//	// producer
//	feed.Write(samples)
//
//	// consumer
//	n := min(feed.Available(), uint64(feed.ContiguousRun(feed.ConsumeCursor())))
//	process(feed.Window(int(n)))
//	feed.Consume(int(n))
//
// # Cursors
//
// Both cursors are 64-bit sample counters that only grow. The storage index
// of a cursor is cursor % Capacity. The cursors are published atomically so
// the producer and consumer may run on different goroutines without a lock.
//
// # Overflow
//
// Write never waits for the consumer. When the producer runs more than
// Capacity samples ahead, the oldest unread samples are overwritten. The
// consumer detects this with Overflowed and drops the lost span with Resync.
package ring
