// Copyright 2026 Jan Revald <jrv81@pm.me>
// Licensed under the MIT license. See license text in the LICENSE file.

package parklot

// Digit select states, one-hot active-low. The select register is the whole
// state of the multiplexer: it cycles through the four positions and parks
// on selNone while reset is asserted.
const (
	selDigit0 = 0xe // units
	selDigit1 = 0xd // tens
	selDigit2 = 0xb // hundreds
	selDigit3 = 0x7 // thousands
	selNone   = 0xf
)

// SegBlank is the all-segments-off pattern (active-low).
const SegBlank = 0x7f

// segTable maps a decimal digit to its active-low 7-segment pattern,
// bit order gfedcba.
var segTable = [10]uint32{
	0x40, // 0
	0x79, // 1
	0x24, // 2
	0x30, // 3
	0x19, // 4
	0x12, // 5
	0x02, // 6
	0x78, // 7
	0x00, // 8
	0x10, // 9
}

// Multiplexer returns the display multiplexer process, clocked by the
// rising edge of the divided tick. Each tick it advances the one-hot
// active-low digit select 0→1→2→3→0. While reset is asserted the select is
// forced to selNone and held; the divider freezes the tick low during reset,
// so the reset override is applied at the system clock rate rather than
// gated on a tick edge that can never arrive. Any unknown select state,
// selNone included, advances to digit 0 on the next tick, so the display
// restarts at the first position right after reset releases.
//
//	Reads:  reset, tick
//	Drives: digit_sel
//
func Multiplexer() MountFn {
	return func(sk *Socket) Component {
		rst := sk.RegOrNew(sigReset)
		tick := sk.RegOrNew(sigTick)
		sel := sk.RegOrNew(sigDigitSel)
		var prevTick bool
		return func(s *Sim) {
			t := s.GetBool(tick)
			edge := t && !prevTick
			prevTick = t
			if s.GetBool(rst) {
				s.Set(sel, selNone)
				return
			}
			cur := s.Get(sel)
			if !edge {
				s.Set(sel, cur)
				return
			}
			switch cur {
			case selDigit0:
				s.Set(sel, selDigit1)
			case selDigit1:
				s.Set(sel, selDigit2)
			case selDigit2:
				s.Set(sel, selDigit3)
			default:
				s.Set(sel, selDigit0)
			}
		}
	}
}

// Encoder returns the digit encoder process, evaluated on the same tick
// edges as the multiplexer but against the pre-edge digit select, so the
// segments always match the position that is physically lit. It extracts
// the decimal digit of count at the selected power-of-ten place and maps it
// through the 7-segment table; an unknown select state shows digit 0. Reset
// blanks the output while asserted, nothing is latched: the pattern is
// recomputed from the lookup on the first tick edge after release.
//
// The count register belongs to the fast clock domain and is read here
// without synchronization. Count changes are slow relative to the refresh
// rate, so a momentary mid-update read is visually imperceptible; this is a
// documented relaxed-consistency boundary, not a bug.
//
//	Reads:  reset, tick, digit_sel, count
//	Drives: segments
//
func Encoder() MountFn {
	return func(sk *Socket) Component {
		rst := sk.RegOrNew(sigReset)
		tick := sk.RegOrNew(sigTick)
		sel := sk.RegOrNew(sigDigitSel)
		count := sk.RegOrNew(sigCount)
		seg := sk.RegOrNew(sigSegments)
		var prevTick bool
		return func(s *Sim) {
			t := s.GetBool(tick)
			edge := t && !prevTick
			prevTick = t
			if s.GetBool(rst) {
				s.Set(seg, SegBlank)
				return
			}
			if !edge {
				s.Set(seg, s.Get(seg))
				return
			}
			var d uint32
			switch s.Get(sel) {
			case selDigit0:
				d = s.Get(count) % 10
			case selDigit1:
				d = s.Get(count) / 10 % 10
			case selDigit2:
				d = s.Get(count) / 100 % 10
			case selDigit3:
				d = s.Get(count) / 1000 % 10
			default:
				d = 0
			}
			if d > 9 {
				s.Set(seg, SegBlank)
				return
			}
			s.Set(seg, segTable[d])
		}
	}
}

// SegmentsFor returns the active-low 7-segment pattern for a decimal digit.
// Values outside 0–9 map to the blank pattern.
//
func SegmentsFor(digit int) uint32 {
	if digit < 0 || digit > 9 {
		return SegBlank
	}
	return segTable[digit]
}
