// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"math"
)

// Frequencies returns the first count tones of the alphabet.
func (c Configuration) Frequencies(count int) []float64 {
	return c.ComputeFrequencies(count, 0)
}

// ComputeFrequencies returns count tones, starting offset steps above FirstFrequency.
func (c Configuration) ComputeFrequencies(count int, offset float64) []float64 {
	frequencies := make([]float64, count)
	for i := range count {
		step := float64(i) + offset
		if c.FrequencyIncrement != 0 {
			frequencies[i] = c.FirstFrequency + step*float64(c.FrequencyIncrement)
		} else {
			frequencies[i] = c.FirstFrequency * math.Pow(c.FrequencyMulti, step)
		}
	}
	return frequencies
}

// CheckAlphabet fails when one of the first count tones is not below the
// Nyquist frequency.
func (c Configuration) CheckAlphabet(count int) error {
	nyquist := c.SampleRate / 2
	for i, f := range c.Frequencies(count) {
		if !(f < nyquist) {
			return fmt.Errorf("%w: tone %d at %vHz is not below %vHz",
				ErrSampleRateTooLow, i, f, nyquist)
		}
	}
	return nil
}

// MinimumWindowSize returns the smallest analysis window, in samples, that
// separates targetFrequency from closestFrequency without leakage and holds
// at least five periods of targetFrequency.
//
// targetFrequency must be positive and differ from closestFrequency,
// otherwise MinimumWindowSize panics.
func MinimumWindowSize(sampleRate, targetFrequency, closestFrequency float64) int {
	if !(targetFrequency > 0) || closestFrequency == targetFrequency {
		panic(fmt.Errorf("%w: target %v, closest %v",
			ErrDegenerateFrequencies, targetFrequency, closestFrequency))
	}

	maxBinSize := math.Abs(closestFrequency-targetFrequency) / 2
	leak := int(math.Ceil(sampleRate / maxBinSize))
	settle := int(math.Ceil(sampleRate * 5 / targetFrequency))

	return max(leak, settle)
}

// AnalysisWindow is the window size needed to tell apart the two lowest
// tones of the alphabet, capped to one word.
func (c Configuration) AnalysisWindow() int {
	f := c.Frequencies(2)
	return max(1, min(c.WordLength(), MinimumWindowSize(c.SampleRate, f[0], f[1])))
}
