// Copyright 2026 Jan Revald <jrv81@pm.me>
// Licensed under the MIT license. See license text in the LICENSE file.

package parklot

// A Debouncer turns a raw, mechanically noisy momentary input into a clean
// single-cycle-stable strobe. Sample is called exactly once per system clock
// edge with the raw level and returns the cleaned signal. The contract the
// controller relies on: the returned signal is asserted for exactly one
// clock cycle per genuine physical press, never for bounce. The counting
// state machine acts on every cycle its input is asserted, so a held level
// here would count once per clock.
//
// The filtering algorithm itself is a collaborator detail; the controller
// never looks inside.
//
type Debouncer interface {
	Sample(raw bool) bool
}

// Direct is a pass-through Debouncer for inputs that are already clean
// single-cycle pulses, such as scripted test stimuli.
//
type Direct struct{}

// Sample returns raw unchanged.
func (Direct) Sample(raw bool) bool { return raw }

// Stability is a counter-based Debouncer: the input level is accepted once
// it has held steady for depth consecutive samples, and each accepted
// press is reported as a single-cycle strobe. Shorter glitches restart the
// count and never reach the output.
//
type Stability struct {
	depth int
	held  int
	level bool
	prev  bool
}

// NewStability returns a Stability filter requiring depth stable samples
// before accepting a level change. A depth below 1 accepts the raw level
// immediately but still reports one strobe per press.
//
func NewStability(depth int) *Stability {
	return &Stability{depth: depth}
}

// Sample feeds one raw sample and returns the debounced strobe.
func (f *Stability) Sample(raw bool) bool {
	if raw == f.level {
		f.held = 0
	} else {
		f.held++
		if f.held >= f.depth {
			f.level = raw
			f.held = 0
		}
	}
	strobe := f.level && !f.prev
	f.prev = f.level
	return strobe
}
