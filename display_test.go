package parklot_test

import (
	"testing"

	pl "github.com/jrv81/parklot"
)

func TestSegmentsFor(t *testing.T) {
	td := []struct {
		digit int
		want  uint32
	}{
		{0, 0x40},
		{1, 0x79},
		{7, 0x78},
		{8, 0x00},
		{9, 0x10},
		{-1, pl.SegBlank},
		{10, pl.SegBlank},
	}
	for _, d := range td {
		if got := pl.SegmentsFor(d.digit); got != d.want {
			t.Errorf("SegmentsFor(%d) = %#02x, want %#02x", d.digit, got, d.want)
		}
	}
}

func TestMultiplexer_powerOnBlank(t *testing.T) {
	c := newController(t)
	if c.DigitSelect() != 0xf {
		t.Fatalf("digit select = %#04b, want 0b1111", c.DigitSelect())
	}
	if c.DigitIndex() != -1 {
		t.Fatalf("digit index = %d, want -1", c.DigitIndex())
	}
	if c.Segments() != pl.SegBlank {
		t.Fatalf("segments = %#02x, want blank", c.Segments())
	}
}

func TestMultiplexer_oneHotCycle(t *testing.T) {
	c := newController(t)
	resetPulse(c)

	// one advance per tick, period 4, wrapping 3 -> 0
	want := []uint8{0xe, 0xd, 0xb, 0x7, 0xe, 0xd, 0xb, 0x7, 0xe}
	seen := make(map[uint8]bool)
	for i, w := range want {
		c.StepTick()
		got := c.DigitSelect()
		if got != w {
			t.Fatalf("tick %d: digit select = %#04b, want %#04b", i, got, w)
		}
		seen[got] = true
		// active-low one-hot: exactly one bit low among the four
		if n := oneBits(^got & 0xf); n != 1 {
			t.Fatalf("tick %d: digit select %#04b is not one-hot", i, got)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("saw %d distinct select states, want 4", len(seen))
	}
}

func oneBits(v uint8) int {
	n := 0
	for ; v != 0; v >>= 1 {
		n += int(v & 1)
	}
	return n
}

func TestMultiplexer_selectStableBetweenTicks(t *testing.T) {
	c := newController(t)
	resetPulse(c)

	c.StepTick()
	sel := c.DigitSelect()
	// a divider half period spans threshold+1 cycles; stay inside it
	for i := 0; i < c.Threshold(); i++ {
		c.Step()
		if c.DigitSelect() != sel {
			t.Fatalf("digit select changed between ticks: %#04b -> %#04b", sel, c.DigitSelect())
		}
	}
}

func TestEncoder_unitsDigit(t *testing.T) {
	c := newController(t)
	resetPulse(c)

	// count = 7
	c.SetManual(7, true)
	c.Step()
	c.SetManual(0, false)
	c.Step()

	// The encoder samples the select register as it was during the elapsed
	// refresh period, so its output trails the select by one tick.
	segs := map[int]uint8{}
	c.StepTick() // select: units
	for i := 0; i < 4; i++ {
		idx := c.DigitIndex()
		c.StepTick()
		segs[idx] = c.Segments()
	}

	if segs[0] != uint8(pl.SegmentsFor(7)) {
		t.Errorf("units digit: segments = %#02x, want %#02x", segs[0], pl.SegmentsFor(7))
	}
	// leading zeros are shown as "0", not suppressed
	for _, pos := range []int{1, 2, 3} {
		if segs[pos] != uint8(pl.SegmentsFor(0)) {
			t.Errorf("position %d: segments = %#02x, want %#02x", pos, segs[pos], pl.SegmentsFor(0))
		}
	}
}

func TestEncoder_tensDigit(t *testing.T) {
	c := newController(t)
	resetPulse(c)

	// count = 17 -> units 7, tens 1
	c.SetManual(17, true)
	c.Step()
	c.SetManual(0, false)
	c.Step()

	segs := map[int]uint8{}
	c.StepTick()
	for i := 0; i < 4; i++ {
		idx := c.DigitIndex()
		c.StepTick()
		segs[idx] = c.Segments()
	}

	if segs[0] != uint8(pl.SegmentsFor(7)) {
		t.Errorf("units: segments = %#02x, want %#02x", segs[0], pl.SegmentsFor(7))
	}
	if segs[1] != uint8(pl.SegmentsFor(1)) {
		t.Errorf("tens: segments = %#02x, want %#02x", segs[1], pl.SegmentsFor(1))
	}
}

func TestDisplay_resetBlanksAndRestarts(t *testing.T) {
	c := newController(t)
	resetPulse(c)
	c.StepTick()
	c.StepTick()
	if c.DigitIndex() == -1 {
		t.Fatal("precondition: display should be scanning")
	}

	c.SetReset(true)
	c.StepN(2)
	if c.DigitSelect() != 0xf {
		t.Fatalf("digit select under reset = %#04b, want 0b1111", c.DigitSelect())
	}
	if c.Segments() != pl.SegBlank {
		t.Fatalf("segments under reset = %#02x, want blank", c.Segments())
	}

	// the select register jumps back to the first position on the first
	// tick after release
	c.SetReset(false)
	c.StepTick()
	if c.DigitIndex() != 0 {
		t.Fatalf("digit index after reset release = %d, want 0", c.DigitIndex())
	}
}
