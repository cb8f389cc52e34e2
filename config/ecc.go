// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strings"
)

// EccLevel is the error correction strength tier.
type EccLevel int

const (
	EccL EccLevel = iota
	EccM
	EccQ
	EccH
)

const DefaultEccLevel = EccQ

// EccSizing is the symbol budget of one block.
type EccSizing struct {
	TotalSymbols int // payload + ecc
	EccSymbols   int
}

// CorrectableErrors is half the ecc symbol count.
func (s EccSizing) CorrectableErrors() int { return s.EccSymbols / 2 }

var eccTable = [...]EccSizing{
	EccL: {TotalSymbols: 14, EccSymbols: 2},
	EccM: {TotalSymbols: 14, EccSymbols: 4},
	EccQ: {TotalSymbols: 12, EccSymbols: 6},
	EccH: {TotalSymbols: 10, EccSymbols: 6},
}

var eccNames = [...]string{EccL: "L", EccM: "M", EccQ: "Q", EccH: "H"}

// EccLevels lists every level, weakest first.
func EccLevels() []EccLevel { return []EccLevel{EccL, EccM, EccQ, EccH} }

// Sizing looks up the symbol budget of l. l must be one of the declared levels.
func (l EccLevel) Sizing() EccSizing { return eccTable[l] }

// TotalSymbols is the block size of the Reed-Solomon code at level l.
func (l EccLevel) TotalSymbols() int { return eccTable[l].TotalSymbols }

// EccSymbols is the number of correction symbols in a block.
func (l EccLevel) EccSymbols() int { return eccTable[l].EccSymbols }

func (l EccLevel) String() string {
	if l < EccL || l > EccH {
		return fmt.Sprintf("EccLevel(%d)", int(l))
	}
	return eccNames[l]
}

// ParseEccLevel accepts "L", "M", "Q" or "H", in any case.
func ParseEccLevel(s string) (EccLevel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for l, n := range eccNames {
		if n == name {
			return EccLevel(l), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEccLevel, s)
}

// MarshalText encodes l by its letter, L, M, Q or H.
func (l EccLevel) MarshalText() ([]byte, error) {
	if l < EccL || l > EccH {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEccLevel, int(l))
	}
	return []byte(eccNames[l]), nil
}

// UnmarshalText accepts a level letter in either case.
func (l *EccLevel) UnmarshalText(text []byte) error {
	v, err := ParseEccLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
