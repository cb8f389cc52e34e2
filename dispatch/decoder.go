// SPDX-License-Identifier: EPL-2.0

package dispatch

// Decoder is the tone decoder fed by a Dispatcher.
type Decoder interface {
	// MaxWindowLength is the largest window the decoder accepts right now.
	MaxWindowLength() int
	// PushWindow analyses one contiguous window and reports whether a
	// message was completed by it. The window is only valid during the call.
	PushWindow(window []float32) bool
	// Payload returns the completed message bytes. It is only valid right
	// after PushWindow returned true.
	Payload() []byte
}
