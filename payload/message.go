// SPDX-License-Identifier: EPL-2.0

package payload

// Message is what a display receives for one decoded payload.
type Message struct {
	Identity string
	Body     string
}

// Sink shows decoded messages.
type Sink interface {
	Display(msg Message) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Message) error

func (f SinkFunc) Display(msg Message) error { return f(msg) }

// Extract parses a payload and picks the identity and message fields.
// ok is false when either field is missing. When a tag repeats, the last
// occurrence wins.
func Extract(data []byte, length int) (msg Message, ok bool, err error) {
	fields, err := Parse(data, length)
	if err != nil {
		return Message{}, false, err
	}

	var hasIdentity, hasBody bool
	for _, f := range fields {
		switch f.Tag {
		case TagIdentity:
			msg.Identity = string(f.Content)
			hasIdentity = true
		case TagMessage:
			msg.Body = string(f.Content)
			hasBody = true
		}
	}

	if !hasIdentity || !hasBody {
		return Message{}, false, nil
	}
	return msg, true, nil
}

// Deliver extracts a message and hands it to sink. sink is only called when
// both fields are present. delivered reports whether it was called.
func Deliver(data []byte, length int, sink Sink) (delivered bool, err error) {
	msg, ok, err := Extract(data, length)
	if err != nil || !ok {
		return false, err
	}
	return true, sink.Display(msg)
}

// NewMessage encodes an identity and a body as a payload.
func NewMessage(identity, body string) ([]byte, error) {
	return Encode(
		Field{Tag: TagIdentity, Content: []byte(identity)},
		Field{Tag: TagMessage, Content: []byte(body)},
	)
}
