// SPDX-License-Identifier: EPL-2.0

// Package display shows decoded messages.
//
// Every sink implements payload.Sink:
//   - Writer prints "identity: message" lines to any io.Writer (console).
//   - Serial prints the same lines, CRLF terminated, to a serial port.
//   - MQTT publishes a JSON document per message to a broker topic.
//   - Multi fans a message out to several sinks.
//
// Open builds the sink set described by config.DisplaySettings.
package display
