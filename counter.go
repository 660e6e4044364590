// Copyright 2026 Jan Revald <jrv81@pm.me>
// Licensed under the MIT license. See license text in the LICENSE file.

package parklot

// Capacity is the number of parking spots managed by the controller.
// The count register never leaves [0, Capacity].
const Capacity = 20

// Counter returns the occupancy state machine process: the authoritative
// count register and the open/full/closed status flags.
//
// On every clock edge the rules apply in strict priority order: reset
// overrides everything; start/stop latch the open/closed flags; then exactly
// one count branch fires: entry-only increments below capacity, exit-only
// decrements above zero, otherwise a manual-set stores its clamped value.
// Contradictory or absent pulses never mutate the count. A manual-set pulse
// coincident with an entry or exit pulse is ignored that cycle; this
// ordering is inherited from the original design and kept as is.
//
// The full flag is recomputed from the post-branch count every cycle, so it
// is never stale relative to the count register.
//
//	Reads:  reset, entry_db, exit_db, start, stop, set_value, set_enable
//	Drives: count, open, full, closed
//
func Counter() MountFn {
	return func(sk *Socket) Component {
		rst := sk.RegOrNew(sigReset)
		entry := sk.RegOrNew(sigEntryDb)
		exit := sk.RegOrNew(sigExitDb)
		start := sk.RegOrNew(sigStart)
		stop := sk.RegOrNew(sigStop)
		setV := sk.RegOrNew(sigSetValue)
		setEn := sk.RegOrNew(sigSetEnable)
		count := sk.RegOrNew(sigCount)
		open := sk.RegOrNew(sigOpen)
		full := sk.RegOrNew(sigFull)
		closed := sk.RegOrNew(sigClosed)
		return func(s *Sim) {
			if s.GetBool(rst) {
				s.Set(count, 0)
				s.SetBool(open, true)
				s.SetBool(full, false)
				s.SetBool(closed, false)
				return
			}

			// manual flags. start shadows a coincident stop; closed is a
			// sticky latch and only reset clears it.
			switch {
			case s.GetBool(start):
				s.SetBool(open, true)
				s.SetBool(closed, s.GetBool(closed))
			case s.GetBool(stop):
				s.SetBool(open, s.GetBool(open))
				s.SetBool(closed, true)
			default:
				s.SetBool(open, s.GetBool(open))
				s.SetBool(closed, s.GetBool(closed))
			}

			in, out := s.GetBool(entry), s.GetBool(exit)
			c := s.Get(count)
			switch {
			case in && !out && !s.GetBool(full):
				c++
			case !in && out && c > 0:
				c--
			case s.GetBool(setEn):
				c = s.Get(setV)
				if c > Capacity {
					c = Capacity
				}
			}
			s.Set(count, c)
			s.SetBool(full, c == Capacity)
		}
	}
}
