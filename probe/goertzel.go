// SPDX-License-Identifier: EPL-2.0

package probe

import "math"

// goertzel measures the power of one frequency over a block.
type goertzel struct {
	coeff float64
}

func newGoertzel(sampleRate, freq float64) goertzel {
	return goertzel{coeff: 2 * math.Cos(2*math.Pi*freq/sampleRate)}
}

func (g goertzel) power(block []float64) float64 {
	var q1, q2 float64
	for _, s := range block {
		q0 := g.coeff*q1 - q2 + s
		q2, q1 = q1, q0
	}
	return max(0, q1*q1+q2*q2-q1*q2*g.coeff)
}
