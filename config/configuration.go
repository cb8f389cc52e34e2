// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"math"
	"strings"
)

const (
	DefaultWordTime                = 0.06
	DefaultWordSilenceTime         = 0.01
	DefaultGateTime                = 0.12
	DefaultAudibleFirstFrequency   = 1720.0
	DefaultInaudibleFirstFrequency = 18200.0
	DefaultInaudibleStep           = 50
	DefaultTriggerSNR              = 15.0

	// AlphabetSize is the number of tones a session uses.
	AlphabetSize = 16

	// MinInaudibleSampleRate keeps the inaudible alphabet under Nyquist.
	MinInaudibleSampleRate = 44100.0
)

// MultSemitone is the ratio between two neighbouring audible tones.
var MultSemitone = math.Pow(2, 1/15.0)

// Preset names a predefined profile.
type Preset string

const (
	PresetAudible   Preset = "audible"
	PresetInaudible Preset = "inaudible"
)

// StepMode tells how the tone alphabet is spaced.
type StepMode int

const (
	StepMultiplicative StepMode = iota
	StepLinear
)

func (m StepMode) String() string {
	if m == StepLinear {
		return "linear"
	}
	return "multiplicative"
}

// Configuration holds the acoustic parameters of a session.
// It is built once and only read afterwards.
type Configuration struct {
	SampleRate         float64
	FirstFrequency     float64
	FrequencyIncrement int
	FrequencyMulti     float64
	WordTime           float64
	WordSilenceTime    float64
	GateTime           float64
	TriggerSNR         float64
}

// New validates the given values and returns a Configuration.
// A zero frequencyIncrement selects multiplicative stepping with frequencyMulti.
func New(sampleRate, firstFrequency float64, frequencyIncrement int, frequencyMulti,
	wordTime, triggerSNR, gateTime, wordSilenceTime float64) (Configuration, error) {
	c := Configuration{
		SampleRate:         sampleRate,
		FirstFrequency:     firstFrequency,
		FrequencyIncrement: frequencyIncrement,
		FrequencyMulti:     frequencyMulti,
		WordTime:           wordTime,
		WordSilenceTime:    wordSilenceTime,
		GateTime:           gateTime,
		TriggerSNR:         triggerSNR,
	}
	if err := c.Validate(); err != nil {
		return Configuration{}, err
	}
	return c, nil
}

// Validate checks the invariants of c.
func (c Configuration) Validate() error {
	switch {
	case !(c.SampleRate > 0):
		return fmt.Errorf("%w: sample rate %v must be positive", ErrInvalidConfiguration, c.SampleRate)
	case !(c.FirstFrequency > 0):
		return fmt.Errorf("%w: first frequency %v must be positive", ErrInvalidConfiguration, c.FirstFrequency)
	case c.FrequencyIncrement < 0:
		return fmt.Errorf("%w: frequency increment %d is negative", ErrInvalidConfiguration, c.FrequencyIncrement)
	case c.FrequencyIncrement == 0 && !(c.FrequencyMulti > 0):
		return fmt.Errorf("%w: frequency multiplier %v must be positive", ErrInvalidConfiguration, c.FrequencyMulti)
	case c.FrequencyIncrement == 0 && c.FrequencyMulti == 1:
		return fmt.Errorf("%w: frequency multiplier 1 repeats the first tone", ErrInvalidConfiguration)
	case !(c.WordTime > 0):
		return fmt.Errorf("%w: word time %v must be positive", ErrInvalidConfiguration, c.WordTime)
	case !(c.WordSilenceTime > 0):
		return fmt.Errorf("%w: word silence time %v must be positive", ErrInvalidConfiguration, c.WordSilenceTime)
	case !(c.GateTime > 0):
		return fmt.Errorf("%w: gate time %v must be positive", ErrInvalidConfiguration, c.GateTime)
	}
	return nil
}

// Audible returns the audible profile, stepping a semitone fraction from 1720Hz.
func Audible(sampleRate float64) (Configuration, error) {
	return New(sampleRate, DefaultAudibleFirstFrequency, 0, MultSemitone,
		DefaultWordTime, DefaultTriggerSNR, DefaultGateTime, DefaultWordSilenceTime)
}

// Inaudible returns the inaudible profile starting at 18200Hz with 50Hz steps.
// sampleRate must be at least 44100Hz.
func Inaudible(sampleRate float64) (Configuration, error) {
	if sampleRate < MinInaudibleSampleRate {
		return Configuration{}, fmt.Errorf("%w: %s needs %vHz, got %vHz",
			ErrSampleRateTooLow, PresetInaudible, MinInaudibleSampleRate, sampleRate)
	}
	return New(sampleRate, DefaultInaudibleFirstFrequency, DefaultInaudibleStep, 0,
		DefaultWordTime, DefaultTriggerSNR, DefaultGateTime, DefaultWordSilenceTime)
}

// FromPreset resolves a preset by name.
func FromPreset(p Preset, sampleRate float64) (Configuration, error) {
	switch Preset(strings.ToLower(string(p))) {
	case PresetAudible:
		return Audible(sampleRate)
	case PresetInaudible:
		return Inaudible(sampleRate)
	}
	return Configuration{}, fmt.Errorf("%w: %q", ErrUnknownPreset, string(p))
}

// Mode tells whether the alphabet steps linearly or multiplicatively.
func (c Configuration) Mode() StepMode {
	if c.FrequencyIncrement != 0 {
		return StepLinear
	}
	return StepMultiplicative
}

// WordLength is the number of samples in one tone word.
func (c Configuration) WordLength() int { return int(c.SampleRate * c.WordTime) }

// SilenceLength is the number of samples between two words.
func (c Configuration) SilenceLength() int { return int(c.SampleRate * c.WordSilenceTime) }

// GateLength is the number of samples of one gate tone.
func (c Configuration) GateLength() int { return int(c.SampleRate * c.GateTime) }
