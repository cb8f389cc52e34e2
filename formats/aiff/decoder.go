// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"

	"github.com/ik5/tonefeed/audio"
	"github.com/ik5/tonefeed/formats/internal/intbuf"
)

// Decoder reads 8, 16, 24 and 32-bit PCM AIFF.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAiffFile, err)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: bad COMM chunk", ErrNotAiffFile)
	}

	src := intbuf.New(dec, format, int(dec.BitDepth))
	if dec.BitDepth == 8 {
		src.Sample = signed8
	}
	return src, nil
}

// signed8 undoes the go-audio decoder reading 8-bit AIFF samples, which are
// two's complement on disk, as unsigned bytes.
func signed8(v int) int { return int(int8(uint8(v))) }
