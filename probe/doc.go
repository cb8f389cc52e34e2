// SPDX-License-Identifier: EPL-2.0

// Package probe is a tone level decoder for the dispatch loop.
//
// It does not demodulate symbols. It measures, for every analysis window,
// the level of each tone of the configured alphabet and reports the
// strongest one together with its margin over the median tone level. This
// makes it useful to check a microphone chain, to tune TriggerSNR and to
// drive the dispatcher with a demand derived from the Configuration.
//
// # Phases
//
// The decoder starts in PhaseGate, where it slides a full analysis window
// forward by a quarter window at a time, so its demand drops to the hop
// length after the first window. When a tone rises TriggerSNR above the
// median it switches to PhaseTone and asks for whole, non-overlapping
// windows until GateLength samples pass without a triggered tone.
package probe
