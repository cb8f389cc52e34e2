// SPDX-License-Identifier: EPL-2.0

// Package payload turns a decoded byte payload into typed fields.
//
// A payload is a flat sequence of type-length-value fields, repeated until the
// declared payload length is used up:
//
//	[type: 1 byte][length: 1 byte][content: length bytes] ...
//
// Type 0 carries the sender identity and type 1 the message body. Other types
// are skipped so newer senders can add fields without breaking older readers.
//
// A length byte that runs past the declared payload length makes the whole
// payload malformed: Parse returns ErrMalformedPayload and no fields, never a
// partial result.
//
//	msg, ok, err := payload.Extract(data, len(data))
//	if err != nil {
//	    // malformed, skip this message
//	}
//	if ok {
//	    fmt.Println(msg.Identity, msg.Body)
//	}
package payload
