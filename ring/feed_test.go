// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"errors"
	"runtime"
	"sync"
	"testing"
)

func ramp(start, n int) []float32 {
	out := make([]float32, n)
	for i := range n {
		out[i] = float32(start+i) / 1024
	}
	return out
}

// drain reads everything available in contiguous windows of at most maxWindow.
func drain(f *Feed, maxWindow int) []float32 {
	var out []float32
	for f.Available() > 0 {
		n := min(uint64(maxWindow), f.Available(), uint64(f.ContiguousRun(f.ConsumeCursor())))
		out = append(out, f.Window(int(n))...)
		f.Consume(int(n))
	}
	return out
}

func TestNew_InvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, c := range []int{0, -1} {
		if _, err := New(c); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", c, err)
		}
	}
}

func TestFeed_WriteReadAcrossWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		capacity  int
		writes    []int
		maxWindow int
		preload   int // samples written and consumed first to move the cursors
	}{
		{name: "single write", capacity: 16, writes: []int{10}, maxWindow: 4},
		{name: "fills exactly", capacity: 16, writes: []int{16}, maxWindow: 5},
		{name: "bursty writes", capacity: 16, writes: []int{3, 7, 1, 5}, maxWindow: 3},
		{name: "wraps mid write", capacity: 16, writes: []int{12}, maxWindow: 7, preload: 9},
		{name: "cursor at end", capacity: 8, writes: []int{8}, maxWindow: 8, preload: 8},
		{name: "window of one", capacity: 5, writes: []int{2, 3}, maxWindow: 1, preload: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := New(tt.capacity)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if tt.preload > 0 {
				f.Write(ramp(-tt.preload, tt.preload))
				drain(f, tt.capacity)
			}

			var want []float32
			next := 0
			for _, n := range tt.writes {
				chunk := ramp(next, n)
				next += n
				want = append(want, chunk...)
				f.Write(chunk)
			}

			got := drain(f, tt.maxWindow)
			if len(got) != len(want) {
				t.Fatalf("read %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}
			if f.Available() != 0 {
				t.Errorf("Available() = %d after drain", f.Available())
			}
		})
	}
}

func TestFeed_ContiguousRun(t *testing.T) {
	t.Parallel()

	f, _ := New(10)
	tests := []struct {
		cursor uint64
		want   int
	}{
		{0, 10}, {3, 7}, {9, 1}, {10, 10}, {27, 3},
	}
	for _, tt := range tests {
		if got := f.ContiguousRun(tt.cursor); got != tt.want {
			t.Errorf("ContiguousRun(%d) = %d, want %d", tt.cursor, got, tt.want)
		}
	}
}

func TestFeed_CursorsAreMonotonic(t *testing.T) {
	t.Parallel()

	f, _ := New(8)
	f.Write(ramp(0, 6))
	f.Consume(4)
	f.Write(ramp(6, 5))

	if f.FeedCursor() != 11 || f.ConsumeCursor() != 4 {
		t.Errorf("cursors = %d/%d, want 11/4", f.FeedCursor(), f.ConsumeCursor())
	}
	if f.Available() != 7 {
		t.Errorf("Available() = %d, want 7", f.Available())
	}
	if f.Overflowed() {
		t.Error("Overflowed() = true without overflow")
	}
}

func TestFeed_ConsumeTooMuchPanics(t *testing.T) {
	t.Parallel()

	f, _ := New(8)
	f.Write(ramp(0, 3))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrConsumeTooLarge) {
			t.Errorf("panic = %v, want ErrConsumeTooLarge", r)
		}
	}()
	f.Consume(4)
}

func TestFeed_OverflowResync(t *testing.T) {
	t.Parallel()

	const capacity = 8
	f, _ := New(capacity)
	f.Write(ramp(0, capacity+1))

	if !f.Overflowed() {
		t.Fatal("Overflowed() = false after capacity+1 writes")
	}
	dropped := f.Resync()
	if dropped != 1 {
		t.Errorf("Resync() = %d, want 1", dropped)
	}
	if f.Overflowed() {
		t.Error("still overflowed after Resync()")
	}
	if f.Available() != capacity {
		t.Errorf("Available() = %d, want %d", f.Available(), capacity)
	}

	got := drain(f, capacity)
	want := ramp(1, capacity)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFeed_OverflowAcrossSeveralWrites(t *testing.T) {
	t.Parallel()

	f, _ := New(6)
	f.Write(ramp(0, 4))
	f.Consume(2)
	f.Write(ramp(4, 4))
	f.Write(ramp(8, 3)) // 9 unread, 6 stored

	if dropped := f.Resync(); dropped != 3 {
		t.Errorf("Resync() = %d, want 3", dropped)
	}
	got := drain(f, 4)
	want := ramp(5, 6)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if f.Resync() != 0 {
		t.Error("Resync() on a healthy feed should drop nothing")
	}
}

func TestFeed_Reset(t *testing.T) {
	t.Parallel()

	f, _ := New(4)
	f.Write(ramp(0, 3))
	f.Reset()
	if f.FeedCursor() != 0 || f.ConsumeCursor() != 0 || f.Available() != 0 {
		t.Error("Reset() left cursors set")
	}
}

func TestFeed_ConcurrentProducerConsumer(t *testing.T) {
	t.Parallel()

	const (
		capacity = 256
		chunk    = 32
		total    = 64 * 1024
	)
	f, _ := New(capacity)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for written := 0; written < total; {
			// stay inside the capacity so no sample is overwritten
			if f.Available()+chunk > capacity {
				runtime.Gosched()
				continue
			}
			f.Write(ramp(written, chunk))
			written += chunk
		}
	}()

	next := 0
	for next < total {
		n := min(uint64(17), f.Available(), uint64(f.ContiguousRun(f.ConsumeCursor())))
		if n == 0 {
			runtime.Gosched()
			continue
		}
		for _, s := range f.Window(int(n)) {
			if want := float32(next) / 1024; s != want {
				t.Fatalf("sample %d = %v, want %v", next, s, want)
			}
			next++
		}
		f.Consume(int(n))
	}
	wg.Wait()
}
