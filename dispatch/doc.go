// SPDX-License-Identifier: EPL-2.0

// Package dispatch feeds analysis windows from a ring.Feed to a tone decoder.
//
// Every pump iteration sizes the next window as the smallest of:
//   - the decoder's current MaxWindowLength,
//   - the number of unread samples,
//   - the samples left before the ring storage wraps.
//
// The decoder demand is asked again before each window because it changes
// with the decoder phase (waiting for a gate tone, inside a symbol, ...).
// A window never straddles the wrap point: the remainder is sent on the next
// iteration, starting at the beginning of the storage.
//
// When PushWindow reports a completed message, the payload is parsed and
// delivered to the payload.Sink before the next window is sent, so messages
// reach the display in arrival order.
//
//	d := dispatch.New(feed, decoder, sink)
//	d.Logger = log.New(os.Stderr, "", log.LstdFlags)
//	go capture.Start()          // producer writes into feed
//	d.Run(ctx, 10*time.Millisecond)
//
// # Overflow
//
// Before each pump the dispatcher checks whether the producer overran the
// ring. The overwritten samples are dropped, the consume cursor jumps to the
// oldest sample still stored, and the loss is logged, counted and passed to
// OnLoss.
package dispatch
