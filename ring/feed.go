// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"fmt"
	"sync/atomic"
)

// Feed is a single-producer single-consumer ring of float32 samples.
type Feed struct {
	buf      []float32
	capacity uint64

	feed    atomic.Uint64 // written by the producer only
	consume atomic.Uint64 // written by the consumer only
}

// New allocates a Feed holding capacity samples.
func New(capacity int) (*Feed, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Feed{
		buf:      make([]float32, capacity),
		capacity: uint64(capacity),
	}, nil
}

// Capacity is the number of samples the feed holds.
func (f *Feed) Capacity() int { return int(f.capacity) }

// FeedCursor is the total number of samples ever written.
func (f *Feed) FeedCursor() uint64 { return f.feed.Load() }

// ConsumeCursor is the total number of samples ever consumed.
func (f *Feed) ConsumeCursor() uint64 { return f.consume.Load() }

// Write appends samples, wrapping around the end of the storage.
// It does not look at the consumer; see Overflowed.
func (f *Feed) Write(samples []float32) {
	n := uint64(len(samples))
	if n == 0 {
		return
	}

	cursor := f.feed.Load()
	src := samples
	// Only the newest capacity samples can survive.
	if n > f.capacity {
		skip := n - f.capacity
		src = samples[skip:]
		cursor += skip
	}

	for len(src) > 0 {
		pos := cursor % f.capacity
		c := copy(f.buf[pos:], src)
		src = src[c:]
		cursor += uint64(c)
	}

	f.feed.Add(n)
}

// Available is the number of written samples not consumed yet.
// It exceeds Capacity after an overflow.
func (f *Feed) Available() uint64 {
	consume := f.consume.Load()
	return f.feed.Load() - consume
}

// ContiguousRun is the number of storage slots from cursor to the physical
// end of the buffer.
func (f *Feed) ContiguousRun(cursor uint64) int {
	return int(f.capacity - cursor%f.capacity)
}

// Window returns length samples starting at the consume cursor. The slice
// aliases the storage and stays valid until the producer wraps onto it.
// length must not exceed Available or ContiguousRun(ConsumeCursor()).
func (f *Feed) Window(length int) []float32 {
	pos := f.consume.Load() % f.capacity
	return f.buf[pos : pos+uint64(length)]
}

// Consume releases length samples.
// It panics when length is negative or larger than Available.
func (f *Feed) Consume(length int) {
	if length < 0 || uint64(length) > f.Available() {
		panic(fmt.Errorf("%w: %d > %d", ErrConsumeTooLarge, length, f.Available()))
	}
	f.consume.Add(uint64(length))
}

// Overflowed reports whether the producer overwrote unread samples.
func (f *Feed) Overflowed() bool {
	return f.Available() > f.capacity
}

// Resync drops the overwritten samples so that the consume cursor points at
// the oldest sample still stored, and returns how many samples were lost.
func (f *Feed) Resync() uint64 {
	feed := f.feed.Load()
	consume := f.consume.Load()
	if feed-consume <= f.capacity {
		return 0
	}
	oldest := feed - f.capacity
	f.consume.Store(oldest)
	return oldest - consume
}

// Reset discards everything. Neither side may be running.
func (f *Feed) Reset() {
	f.feed.Store(0)
	f.consume.Store(0)
	clear(f.buf)
}
