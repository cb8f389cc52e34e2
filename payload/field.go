// SPDX-License-Identifier: EPL-2.0

package payload

import "fmt"

const (
	TagIdentity byte = 0
	TagMessage  byte = 1

	headerSize = 2 // tag + length
)

// Field is one decoded type-length-value entry.
type Field struct {
	Tag     byte
	Content []byte
}

// Parse splits the first length bytes of data into fields.
// Content slices alias data.
func Parse(data []byte, length int) ([]Field, error) {
	if length < 0 || length > len(data) {
		return nil, fmt.Errorf("%w: declared length %d, have %d bytes", ErrMalformedPayload, length, len(data))
	}

	var fields []Field
	c := 0
	for c < length {
		if c+headerSize > length {
			return nil, fmt.Errorf("%w: truncated field header at %d", ErrMalformedPayload, c)
		}
		tag := data[c]
		size := int(data[c+1])
		c += headerSize

		if c+size > length {
			return nil, fmt.Errorf("%w: field %d at %d needs %d bytes, %d left",
				ErrMalformedPayload, tag, c, size, length-c)
		}
		fields = append(fields, Field{Tag: tag, Content: data[c : c+size : c+size]})
		c += size
	}

	return fields, nil
}

// Encode writes fields in wire order.
func Encode(fields ...Field) ([]byte, error) {
	size := 0
	for _, f := range fields {
		if len(f.Content) > 0xff {
			return nil, fmt.Errorf("%w: tag %d has %d bytes", ErrFieldTooLong, f.Tag, len(f.Content))
		}
		size += headerSize + len(f.Content)
	}

	out := make([]byte, 0, size)
	for _, f := range fields {
		out = append(out, f.Tag, byte(len(f.Content)))
		out = append(out, f.Content...)
	}
	return out, nil
}
