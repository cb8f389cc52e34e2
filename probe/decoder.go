// SPDX-License-Identifier: EPL-2.0

package probe

import (
	"fmt"
	"math"
	"slices"

	"github.com/mjibson/go-dsp/window"

	"github.com/ik5/tonefeed/config"
)

// DefaultTones is the alphabet size probed when none is given.
const DefaultTones = config.AlphabetSize

// floorPower keeps silent tones at a finite level.
const floorPower = 1e-20

// Phase is the listening state of a Decoder.
type Phase int

const (
	PhaseGate Phase = iota
	PhaseTone
)

func (p Phase) String() string {
	if p == PhaseTone {
		return "tone"
	}
	return "gate"
}

// Detection describes the strongest tone of one analysis window.
type Detection struct {
	Tone      int     // index in the alphabet
	Frequency float64 // Hz
	Level     float64 // dBFS of a sine at that frequency
	SNR       float64 // dB over the median tone level
	Triggered bool    // SNR reached the configured trigger
}

// Decoder implements dispatch.Decoder. It never completes a message.
type Decoder struct {
	cfg     config.Configuration
	freqs   []float64
	filters []goertzel
	hann    []float64

	size int // analysis window
	hop  int // gate phase step

	phase   Phase
	quiet   int // samples since the last triggered window
	buf     []float64
	block   []float64
	levels  []float64
	sorted  []float64
	last    Detection
	windows int
	hits    int

	// OnDetect, when set, receives every analysed window.
	OnDetect func(Detection)
}

// New probes the first tones frequencies of cfg's alphabet.
func New(cfg config.Configuration, tones int) (*Decoder, error) {
	if tones < 2 {
		return nil, fmt.Errorf("%w: need at least 2 tones, got %d", config.ErrInvalidConfiguration, tones)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.CheckAlphabet(tones); err != nil {
		return nil, err
	}

	size := cfg.AnalysisWindow()
	d := &Decoder{
		cfg:    cfg,
		freqs:  cfg.Frequencies(tones),
		hann:   window.Hann(size),
		size:   size,
		hop:    max(1, size/4),
		buf:    make([]float64, 0, size),
		block:  make([]float64, size),
		levels: make([]float64, tones),
		sorted: make([]float64, tones),
	}
	for _, f := range d.freqs {
		d.filters = append(d.filters, newGoertzel(cfg.SampleRate, f))
	}
	return d, nil
}

// Phase, WindowSize and Hop describe the current analysis geometry.
func (d *Decoder) Phase() Phase    { return d.phase }
func (d *Decoder) WindowSize() int { return d.size }
func (d *Decoder) Hop() int        { return d.hop }

// Frequencies is the probed alphabet in Hz.
func (d *Decoder) Frequencies() []float64 { return slices.Clone(d.freqs) }

// Last is the detection of the latest analysed window.
func (d *Decoder) Last() Detection { return d.last }

// Windows is the number of analysed windows; Triggers counts those over
// the trigger level.
func (d *Decoder) Windows() int  { return d.windows }
func (d *Decoder) Triggers() int { return d.hits }

// MaxWindowLength is the number of samples missing from the next analysis
// window.
func (d *Decoder) MaxWindowLength() int {
	return d.size - len(d.buf)
}

// PushWindow buffers samples and analyses every completed window.
// It never reports a message.
func (d *Decoder) PushWindow(samples []float32) bool {
	for len(samples) > 0 {
		take := min(len(samples), d.size-len(d.buf))
		for _, s := range samples[:take] {
			d.buf = append(d.buf, float64(s))
		}
		samples = samples[take:]

		if len(d.buf) == d.size {
			d.analyse()
		}
	}
	return false
}

// Payload is always nil.
func (d *Decoder) Payload() []byte { return nil }

// Reset drops buffered samples and returns to the gate phase.
func (d *Decoder) Reset() {
	d.buf = d.buf[:0]
	d.phase = PhaseGate
	d.quiet = 0
}

func (d *Decoder) analyse() {
	for i, s := range d.buf {
		d.block[i] = s * d.hann[i]
	}

	// A sine of amplitude A under a Hann window of n points has Goertzel
	// magnitude A*n/4.
	norm := 4 / float64(d.size)
	best := 0
	for i, g := range d.filters {
		amp := math.Sqrt(g.power(d.block)+floorPower) * norm
		d.levels[i] = 20 * math.Log10(amp)
		if d.levels[i] > d.levels[best] {
			best = i
		}
	}

	copy(d.sorted, d.levels)
	slices.Sort(d.sorted)
	median := d.sorted[len(d.sorted)/2]
	if len(d.sorted)%2 == 0 {
		median = (median + d.sorted[len(d.sorted)/2-1]) / 2
	}

	det := Detection{
		Tone:      best,
		Frequency: d.freqs[best],
		Level:     d.levels[best],
		SNR:       d.levels[best] - median,
	}
	det.Triggered = det.SNR >= d.cfg.TriggerSNR
	d.last = det
	d.windows++

	advance := d.size
	if d.phase == PhaseGate {
		advance = d.hop
	}

	if det.Triggered {
		d.hits++
		d.phase = PhaseTone
		d.quiet = 0
	} else if d.phase == PhaseTone {
		d.quiet += d.size
		if d.quiet >= d.cfg.GateLength() {
			d.phase = PhaseGate
			d.quiet = 0
		}
	}

	if d.OnDetect != nil {
		d.OnDetect(det)
	}

	// Slide in the gate phase, start over in the tone phase.
	if d.phase == PhaseTone || advance == d.size {
		d.buf = d.buf[:0]
		return
	}
	n := copy(d.buf, d.buf[advance:])
	d.buf = d.buf[:n]
}
