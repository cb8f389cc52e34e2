// SPDX-License-Identifier: EPL-2.0

package payload

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		length  int
		want    Message
		wantOK  bool
		wantErr bool
	}{
		{name: "complete", data: sample, length: 9, want: Message{Identity: "abc", Body: "hi"}, wantOK: true},
		{name: "truncated", data: sample, length: 7, wantErr: true},
		{name: "identity only", data: sample, length: 5},
		{name: "message only", data: []byte{1, 2, 'h', 'i'}, length: 4},
		{name: "reversed order", data: []byte{1, 1, 'm', 0, 1, 'u'}, length: 6, want: Message{Identity: "u", Body: "m"}, wantOK: true},
		{name: "unknown between", data: []byte{0, 1, 'u', 7, 2, 1, 1, 1, 1, 'm'}, length: 10, want: Message{Identity: "u", Body: "m"}, wantOK: true},
		{name: "last one wins", data: []byte{0, 1, 'a', 0, 1, 'b', 1, 0}, length: 8, want: Message{Identity: "b"}, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok, err := Extract(tt.data, tt.length)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPayload) {
					t.Fatalf("Extract() error = %v, want ErrMalformedPayload", err)
				}
				if ok || got != (Message{}) {
					t.Errorf("Extract() = %+v, %v on malformed payload", got, ok)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Extract() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDeliver(t *testing.T) {
	t.Parallel()

	var shown []Message
	sink := SinkFunc(func(m Message) error {
		shown = append(shown, m)
		return nil
	})

	if delivered, err := Deliver(sample, 9, sink); !delivered || err != nil {
		t.Fatalf("Deliver() = %v, %v", delivered, err)
	}
	if delivered, err := Deliver(sample, 7, sink); delivered || !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Deliver(truncated) = %v, %v", delivered, err)
	}
	if delivered, err := Deliver(sample, 5, sink); delivered || err != nil {
		t.Errorf("Deliver(identity only) = %v, %v", delivered, err)
	}

	if len(shown) != 1 || shown[0] != (Message{Identity: "abc", Body: "hi"}) {
		t.Errorf("sink saw %+v", shown)
	}
}

func TestDeliver_SinkError(t *testing.T) {
	t.Parallel()

	boom := errors.New("display offline")
	delivered, err := Deliver(sample, 9, SinkFunc(func(Message) error { return boom }))
	if !delivered || !errors.Is(err, boom) {
		t.Errorf("Deliver() = %v, %v; want true, %v", delivered, err, boom)
	}
}

func TestNewMessage(t *testing.T) {
	t.Parallel()

	data, err := NewMessage("abc", "hi")
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}
	msg, ok, err := Extract(data, len(data))
	if err != nil || !ok || msg != (Message{Identity: "abc", Body: "hi"}) {
		t.Errorf("Extract(NewMessage()) = %+v, %v, %v", msg, ok, err)
	}
}
