// SPDX-License-Identifier: EPL-2.0

package display

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/ik5/tonefeed/config"
	"github.com/ik5/tonefeed/payload"
)

// Multi shows every message on all of its sinks.
type Multi struct {
	sinks []payload.Sink
}

// NewMulti shows every message on all sinks.
func NewMulti(sinks ...payload.Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Add appends a sink. It is not safe to call during Display.
func (m *Multi) Add(s payload.Sink) { m.sinks = append(m.sinks, s) }

// Len is the number of sinks.
func (m *Multi) Len() int { return len(m.sinks) }

// Display tries every sink, even after a failure, and joins the errors.
func (m *Multi) Display(msg payload.Message) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Display(msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes the sinks that hold a resource.
func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Open builds the sinks enabled in s. Console output goes to os.Stdout.
func Open(s config.DisplaySettings, logger *log.Logger) (*Multi, error) {
	return open(s, os.Stdout, logger)
}

func open(s config.DisplaySettings, console io.Writer, logger *log.Logger) (*Multi, error) {
	m := NewMulti()

	if s.Console {
		m.Add(NewWriter(console))
	}
	if s.Serial.Port != "" {
		port, err := OpenSerial(s.Serial.Port, s.Serial.Baud)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		m.Add(port)
	}
	if s.MQTT.Broker != "" {
		pub, err := DialMQTT(s.MQTT, logger)
		if err != nil {
			_ = m.Close()
			return nil, err
		}
		m.Add(pub)
	}

	if m.Len() == 0 {
		return nil, ErrNoSink
	}
	return m, nil
}
