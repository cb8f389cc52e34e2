// SPDX-License-Identifier: EPL-2.0

package display

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Serial prints CRLF terminated lines to a serial line, such as an LCD
// terminal or a microcontroller.
type Serial struct {
	*Writer
	port io.Closer
}

// OpenSerial opens port at baud.
func OpenSerial(port string, baud int) (*Serial, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        port,
		Baud:        baud,
		ReadTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", port, err)
	}
	return NewSerial(p), nil
}

// NewSerial wraps an already open port.
func NewSerial(port io.WriteCloser) *Serial {
	return &Serial{
		Writer: &Writer{w: port, newline: "\r\n"},
		port:   port,
	}
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}
