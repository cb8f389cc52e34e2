// SPDX-License-Identifier: EPL-2.0

// Package config derives the acoustic analysis parameters of a tone link.
//
// A Configuration is an immutable value built either from explicit values
// with New, or from one of the named presets:
//
//	cfg, err := config.Inaudible(48000)
//	if err != nil {
//	    return err // ErrSampleRateTooLow below 44.1kHz
//	}
//
// # Tone Alphabet
//
// ComputeFrequencies lays out the tone alphabet. When FrequencyIncrement is
// non-zero the tones are spaced linearly:
//
//	f[i] = FirstFrequency + (i+offset) * FrequencyIncrement
//
// otherwise they are spaced multiplicatively, FrequencyMulti apart:
//
//	f[i] = FirstFrequency * FrequencyMulti^(i+offset)
//
// # Window Size
//
// MinimumWindowSize returns the smallest window, in samples, that both
// separates two neighbouring tones without spectral leakage and holds at
// least five periods of the lowest tone.
//
// # Error Correction
//
// EccLevel maps each of the four strength tiers to its symbol sizing:
//
//	L: 14 total, 2 ecc
//	M: 14 total, 4 ecc
//	Q: 12 total, 6 ecc
//	H: 10 total, 6 ecc
//
// # Settings File
//
// Settings is the YAML document read by the command line tool. It carries the
// profile along with the ring, capture, display and metrics sections.
package config
