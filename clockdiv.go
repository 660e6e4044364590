// Copyright 2026 Jan Revald <jrv81@pm.me>
// Licensed under the MIT license. See license text in the LICENSE file.

package parklot

// Divider returns the clock divider process. It counts system clock edges up
// to threshold and inverts the divided tick each time the count is reached,
// producing a 50% duty cycle tick at clockHz/(2*(threshold+1)) Hz. Reset
// clears both the edge counter and the tick.
//
//	Reads:  reset
//	Drives: div_count, tick
//
func Divider(threshold uint32) MountFn {
	return func(sk *Socket) Component {
		rst := sk.RegOrNew(sigReset)
		cnt := sk.RegOrNew(sigDivCount)
		tick := sk.RegOrNew(sigTick)
		return func(s *Sim) {
			switch {
			case s.GetBool(rst):
				s.Set(cnt, 0)
				s.Set(tick, 0)
			case s.Get(cnt) == threshold:
				s.Set(cnt, 0)
				s.SetBool(tick, !s.GetBool(tick))
			default:
				s.Set(cnt, s.Get(cnt)+1)
				s.Set(tick, s.Get(tick))
			}
		}
	}
}

// DividerThreshold derives the divider threshold from the system clock and
// target tick frequencies: floor(clockHz / targetHz / 2).
//
func DividerThreshold(clockHz, targetHz int) int {
	return clockHz / targetHz / 2
}
