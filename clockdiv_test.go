package parklot_test

import (
	"testing"

	pl "github.com/jrv81/parklot"
)

func TestDividerThreshold(t *testing.T) {
	td := []struct {
		clockHz, targetHz, want int
	}{
		{4, 1, 2},
		{100, 25, 2},
		{50000000, 480, 52083},
		{1000, 400, 1}, // floor division
	}
	for _, d := range td {
		if got := pl.DividerThreshold(d.clockHz, d.targetHz); got != d.want {
			t.Errorf("DividerThreshold(%d, %d) = %d, want %d", d.clockHz, d.targetHz, got, d.want)
		}
	}
}

// The tick must show a 50% duty cycle: threshold+1 cycles low, threshold+1
// cycles high, starting low out of reset.
func TestDivider_dutyCycle(t *testing.T) {
	c := newController(t) // threshold 2
	resetPulse(c)

	half := c.Threshold() + 1
	for period := 0; period < 3; period++ {
		for i := 0; i < half; i++ {
			if c.Tick() {
				t.Fatalf("period %d: tick high during low half, cycle %d", period, i)
			}
			c.Step()
		}
		for i := 0; i < half; i++ {
			if !c.Tick() {
				t.Fatalf("period %d: tick low during high half, cycle %d", period, i)
			}
			c.Step()
		}
	}
}

func TestDivider_resetHoldsTickLow(t *testing.T) {
	c := newController(t)
	resetPulse(c)

	// run until the tick is high, then reset
	for !c.Tick() {
		c.Step()
	}
	c.SetReset(true)
	c.StepN(2)
	for i := 0; i < 10; i++ {
		if c.Tick() {
			t.Fatalf("tick high under reset at cycle %d", i)
		}
		c.Step()
	}
}
