package parklot_test

import (
	"testing"

	pl "github.com/jrv81/parklot"
)

func TestStability_strobeOncePerPress(t *testing.T) {
	f := pl.NewStability(3)

	// bouncy press followed by a stable hold and a bouncy release
	samples := []bool{
		true, false, true, // bounce, shorter than depth
		true, true, true, true, // stable press
		false, true, false, false, false, false, // bouncy release
	}
	strobes := 0
	for i, raw := range samples {
		if f.Sample(raw) {
			strobes++
			if i != 4 {
				t.Errorf("strobe at sample %d, want sample 4", i)
			}
		}
	}
	if strobes != 1 {
		t.Fatalf("got %d strobes for one physical press, want 1", strobes)
	}

	// a second press strobes again
	strobes = 0
	for _, raw := range []bool{true, true, true, true} {
		if f.Sample(raw) {
			strobes++
		}
	}
	if strobes != 1 {
		t.Fatalf("got %d strobes for second press, want 1", strobes)
	}
}

func TestStability_glitchesNeverStrobe(t *testing.T) {
	f := pl.NewStability(3)
	for i, raw := range []bool{true, false, true, true, false, false, true, false} {
		if f.Sample(raw) {
			t.Fatalf("glitch leaked through the filter at sample %d", i)
		}
	}
}

func TestStability_depthBelowOne(t *testing.T) {
	f := pl.NewStability(0)
	want := []bool{true, false, false, false, true, false}
	for i, raw := range []bool{true, true, false, false, true, true} {
		if got := f.Sample(raw); got != want[i] {
			t.Fatalf("sample %d: strobe = %v, want %v", i, got, want[i])
		}
	}
}

// A bouncy press through the controller registers exactly one increment.
func TestDebounce_singleCountPerPress(t *testing.T) {
	c, err := pl.New(testClockHz, testRefreshHz,
		pl.WithEntryDebouncer(pl.NewStability(3)),
		pl.WithExitDebouncer(pl.NewStability(3)))
	if err != nil {
		t.Fatal(err)
	}
	resetPulse(c)

	press := []bool{true, false, true, true, true, true, true, true, false, true, false, false, false, false, false}
	for _, raw := range press {
		c.SetEntry(raw)
		c.Step()
	}
	c.StepN(4)
	if c.Count() != 1 {
		t.Fatalf("count = %d, want 1 (one physical press)", c.Count())
	}
}
