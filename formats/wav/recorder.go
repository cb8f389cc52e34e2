// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"
	"sync"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/tonefeed/internal/pcm"
)

// Recorder writes mono float samples as a 16-bit PCM WAV.
// Write and Close may be called from different goroutines.
type Recorder struct {
	mu     sync.Mutex
	enc    *gowav.Encoder
	buf    goaudio.IntBuffer
	file   io.Closer
	frames int
	closed bool
}

// NewRecorder encodes to w. The header is finalized by Close.
func NewRecorder(w io.WriteSeeker, sampleRate int) *Recorder {
	format := &goaudio.Format{NumChannels: 1, SampleRate: sampleRate}
	return &Recorder{
		enc: gowav.NewEncoder(w, sampleRate, 16, 1, formatPCM),
		buf: goaudio.IntBuffer{Format: format, SourceBitDepth: 16},
	}
}

// Create records into a new file at path.
func Create(path string, sampleRate int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	r := NewRecorder(f, sampleRate)
	r.file = f
	return r, nil
}

// Write appends mono samples, clamped to 16 bits. It satisfies capture.Tee.
func (r *Recorder) Write(samples []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}

	r.buf.Data = r.buf.Data[:0]
	for _, s := range samples {
		r.buf.Data = append(r.buf.Data, int(pcm.Float32ToInt16(s)))
	}
	if err := r.enc.Write(&r.buf); err != nil {
		return fmt.Errorf("writing recording: %w", err)
	}
	r.frames += len(samples)
	return nil
}

// Frames is the number of samples written so far.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Close finalizes the WAV header and closes the file opened by Create.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.frames == 0 {
		// Emit the data chunk header even for an empty recording.
		r.buf.Data = r.buf.Data[:0]
		err = r.enc.Write(&r.buf)
	}
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("closing recording: %w", err)
	}
	return nil
}
