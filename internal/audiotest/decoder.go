// SPDX-License-Identifier: EPL-2.0

package audiotest

// Decoder is a scripted tone decoder. It satisfies dispatch.Decoder.
type Decoder struct {
	// Demands are returned by MaxWindowLength in turn, one per pushed
	// window. The last entry repeats.
	Demands []int
	// Payloads maps a window index to the payload that window completes.
	Payloads map[int][]byte

	// Windows holds a copy of every pushed window.
	Windows [][]float32
	// Asked holds the demand seen before each pushed window.
	Asked []int

	payload []byte
}

// NewDecoder returns a Decoder that always asks for demand samples.
func NewDecoder(demand int) *Decoder {
	return &Decoder{Demands: []int{demand}}
}

func (d *Decoder) MaxWindowLength() int {
	if len(d.Demands) == 0 {
		return 0
	}
	return d.Demands[min(len(d.Windows), len(d.Demands)-1)]
}

func (d *Decoder) PushWindow(window []float32) bool {
	d.Asked = append(d.Asked, d.MaxWindowLength())

	idx := len(d.Windows)
	d.Windows = append(d.Windows, append([]float32(nil), window...))

	p, ok := d.Payloads[idx]
	if !ok {
		return false
	}
	d.payload = p
	return true
}

func (d *Decoder) Payload() []byte { return d.payload }

// Lengths returns the length of every pushed window.
func (d *Decoder) Lengths() []int {
	out := make([]int, len(d.Windows))
	for i, w := range d.Windows {
		out[i] = len(w)
	}
	return out
}

// Samples concatenates every pushed window.
func (d *Decoder) Samples() []float32 {
	var out []float32
	for _, w := range d.Windows {
		out = append(out, w...)
	}
	return out
}
