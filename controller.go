// Copyright 2026 Jan Revald <jrv81@pm.me>
// Licensed under the MIT license. See license text in the LICENSE file.

package parklot

import "github.com/pkg/errors"

// Signal names used on the controller's internal socket.
const (
	sigReset     = "reset"
	sigEntryDb   = "entry_db"
	sigExitDb    = "exit_db"
	sigStart     = "start"
	sigStop      = "stop"
	sigSetValue  = "set_value"
	sigSetEnable = "set_enable"
	sigCount     = "count"
	sigOpen      = "open"
	sigFull      = "full"
	sigClosed    = "closed"
	sigDivCount  = "div_count"
	sigTick      = "tick"
	sigDigitSel  = "digit_sel"
	sigSegments  = "segments"
)

// defaultDebounceDepth is the Stability filter depth used when no debouncer
// is injected.
const defaultDebounceDepth = 3

// boundary is the raw input state sampled by the input driver on every
// clock edge.
type boundary struct {
	reset     bool
	entryRaw  bool
	exitRaw   bool
	start     bool
	stop      bool
	setValue  uint32 // 5 bits
	setEnable bool
}

// A Controller is the complete parking-lot controller: clock divider,
// occupancy state machine, display multiplexer and digit encoder mounted on
// a single cycle-stepped simulation, with two debounce collaborators on the
// entry and exit inputs.
//
type Controller struct {
	sim *Sim
	in  boundary

	entryDb Debouncer
	exitDb  Debouncer

	threshold int

	count  int
	open   int
	full   int
	closed int
	tick   int
	sel    int
	seg    int
}

// An Option configures a Controller.
//
type Option func(*Controller)

// WithEntryDebouncer injects the debounce collaborator for the entry input.
func WithEntryDebouncer(d Debouncer) Option {
	return func(c *Controller) { c.entryDb = d }
}

// WithExitDebouncer injects the debounce collaborator for the exit input.
func WithExitDebouncer(d Debouncer) Option {
	return func(c *Controller) { c.exitDb = d }
}

// New builds a controller for the given system clock and display refresh
// frequencies. The divider threshold is clockHz/refreshHz/2 and must be at
// least 1.
//
func New(clockHz, refreshHz int, opts ...Option) (*Controller, error) {
	if clockHz <= 0 {
		return nil, errors.New("system clock frequency must be positive")
	}
	if refreshHz <= 0 {
		return nil, errors.New("refresh frequency must be positive")
	}
	threshold := DividerThreshold(clockHz, refreshHz)
	if threshold < 1 {
		return nil, errors.Errorf("refresh frequency %d Hz too fast for %d Hz clock", refreshHz, clockHz)
	}

	c := &Controller{
		threshold: threshold,
		entryDb:   NewStability(defaultDebounceDepth),
		exitDb:    NewStability(defaultDebounceDepth),
	}
	for _, o := range opts {
		o(c)
	}

	sk := newSocket()
	cs := []Component{
		c.inputDriver(sk),
		Divider(uint32(threshold))(sk),
		Counter()(sk),
		Multiplexer()(sk),
		Encoder()(sk),
	}
	c.sim = newSim(sk, cs...)

	c.count = sk.Reg(sigCount)
	c.open = sk.Reg(sigOpen)
	c.full = sk.Reg(sigFull)
	c.closed = sk.Reg(sigClosed)
	c.tick = sk.Reg(sigTick)
	c.sel = sk.Reg(sigDigitSel)
	c.seg = sk.Reg(sigSegments)

	// power-on display state matches the reset state: no digit selected,
	// all segments off.
	c.prime(c.sel, selNone)
	c.prime(c.seg, SegBlank)

	return c, nil
}

// prime forces a register to v in both frames, bypassing the edge
// semantics. Only used before the first Step.
func (c *Controller) prime(n int, v uint32) {
	c.sim.r0[n] = v
	c.sim.r1[n] = v
}

// inputDriver returns the component that samples the raw boundary inputs on
// every clock edge and drives the input registers, routing entry and exit
// through their debounce collaborators.
func (c *Controller) inputDriver(sk *Socket) Component {
	rst := sk.RegOrNew(sigReset)
	entry := sk.RegOrNew(sigEntryDb)
	exit := sk.RegOrNew(sigExitDb)
	start := sk.RegOrNew(sigStart)
	stop := sk.RegOrNew(sigStop)
	setV := sk.RegOrNew(sigSetValue)
	setEn := sk.RegOrNew(sigSetEnable)
	return func(s *Sim) {
		s.SetBool(rst, c.in.reset)
		s.SetBool(entry, c.entryDb.Sample(c.in.entryRaw))
		s.SetBool(exit, c.exitDb.Sample(c.in.exitRaw))
		s.SetBool(start, c.in.start)
		s.SetBool(stop, c.in.stop)
		s.Set(setV, c.in.setValue)
		s.SetBool(setEn, c.in.setEnable)
	}
}

// SetReset drives the synchronous active-high reset line.
func (c *Controller) SetReset(v bool) { c.in.reset = v }

// SetEntry drives the raw entry sensor input.
func (c *Controller) SetEntry(v bool) { c.in.entryRaw = v }

// SetExit drives the raw exit sensor input.
func (c *Controller) SetExit(v bool) { c.in.exitRaw = v }

// SetStart drives the manual open control.
func (c *Controller) SetStart(v bool) { c.in.start = v }

// SetStop drives the manual close control.
func (c *Controller) SetStop(v bool) { c.in.stop = v }

// SetManual drives the 5-bit manual count override and its enable gate.
// Values above 31 are truncated to 5 bits, as the physical input would be.
func (c *Controller) SetManual(value uint8, enable bool) {
	c.in.setValue = uint32(value) & 0x1f
	c.in.setEnable = enable
}

// Step advances the controller by one system clock edge.
func (c *Controller) Step() { c.sim.Step() }

// StepN advances the controller by n system clock edges.
func (c *Controller) StepN(n int) {
	for i := 0; i < n; i++ {
		c.sim.Step()
	}
}

// StepTick advances the controller through one display refresh step: past
// the next rising edge of the divided tick, plus the one cycle the
// tick-clocked processes need to observe it and commit.
func (c *Controller) StepTick() {
	for c.Tick() {
		c.Step()
	}
	for !c.Tick() {
		c.Step()
	}
	c.Step()
}

// Cycles returns the number of system clock edges simulated.
func (c *Controller) Cycles() uint64 { return c.sim.Cycles() }

// Threshold returns the derived clock divider threshold.
func (c *Controller) Threshold() int { return c.threshold }

// Count returns the occupancy count register.
func (c *Controller) Count() int { return int(c.sim.Get(c.count)) }

// Open reports the open status flag.
func (c *Controller) Open() bool { return c.sim.GetBool(c.open) }

// Full reports the full status flag.
func (c *Controller) Full() bool { return c.sim.GetBool(c.full) }

// Closed reports the sticky closed status flag.
func (c *Controller) Closed() bool { return c.sim.GetBool(c.closed) }

// Tick returns the current level of the divided display clock.
func (c *Controller) Tick() bool { return c.sim.GetBool(c.tick) }

// DigitSelect returns the 4-bit one-hot active-low digit select output.
func (c *Controller) DigitSelect() uint8 { return uint8(c.sim.Get(c.sel)) }

// Segments returns the 7-bit active-low segment output.
func (c *Controller) Segments() uint8 { return uint8(c.sim.Get(c.seg)) }

// DigitIndex returns the active digit position 0–3, or -1 when no digit is
// selected (reset state).
func (c *Controller) DigitIndex() int {
	switch c.sim.Get(c.sel) {
	case selDigit0:
		return 0
	case selDigit1:
		return 1
	case selDigit2:
		return 2
	case selDigit3:
		return 3
	}
	return -1
}

// A Snapshot is a point-in-time copy of the controller's externally visible
// state, safe to hand to bridges and loggers.
//
type Snapshot struct {
	Cycle  uint64
	Count  int
	Open   bool
	Full   bool
	Closed bool
}

// Snapshot returns the current externally visible state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Cycle:  c.Cycles(),
		Count:  c.Count(),
		Open:   c.Open(),
		Full:   c.Full(),
		Closed: c.Closed(),
	}
}
