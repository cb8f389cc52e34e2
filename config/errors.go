// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrInvalidConfiguration  = errors.New("invalid configuration")
	ErrSampleRateTooLow      = errors.New("sample rate too low for profile")
	ErrUnknownPreset         = errors.New("unknown preset")
	ErrUnknownEccLevel       = errors.New("unknown ECC level")
	ErrDegenerateFrequencies = errors.New("degenerate frequencies for window size")
)
