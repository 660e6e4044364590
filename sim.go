// Copyright 2026 Jan Revald <jrv81@pm.me>
// Licensed under the MIT license. See license text in the LICENSE file.

package parklot

// A Component is a synchronous process in a simulation. It is called exactly
// once per Step, reads pre-edge register values with Get and writes next-edge
// values with Set. A component must drive every register it owns on every
// step: unwritten registers keep the value they held two steps ago because
// of the frame swap.
//
type Component func(s *Sim)

// A MountFn builds a component. It queries the socket for the register
// numbers assigned to the signals it reads and drives, and returns a closure
// over those numbers.
//
type MountFn func(s *Socket) Component

// Sim is a runnable register-transfer simulation. Registers are 32 bits
// wide; single-bit signals use 0 and 1.
//
type Sim struct {
	r0    []uint32 // register frame read by components
	r1    []uint32 // register frame written by components
	cs    []Component
	count int // register count
	cycle uint64
}

// newSim builds a simulation with room for the registers allocated through
// the given socket. The socket must not allocate further registers once the
// simulation is built.
//
func newSim(sk *Socket, cs ...Component) *Sim {
	s := sk.s
	s.cs = cs
	s.r0 = make([]uint32, s.count)
	s.r1 = make([]uint32, s.count)
	return s
}

// allocReg allocates a register and returns its number.
//
func (s *Sim) allocReg() int {
	n := s.count
	s.count++
	return n
}

// Get returns the pre-edge value of register n.
//
func (s *Sim) Get(n int) uint32 {
	return s.r0[n]
}

// GetBool returns the pre-edge value of register n as a logic level.
//
func (s *Sim) GetBool(n int) bool {
	return s.r0[n] != 0
}

// Set sets the next-edge value of register n.
//
func (s *Sim) Set(n int, v uint32) {
	s.r1[n] = v
}

// SetBool sets the next-edge value of register n from a logic level.
//
func (s *Sim) SetBool(n int, v bool) {
	if v {
		s.r1[n] = 1
	} else {
		s.r1[n] = 0
	}
}

// Step advances the simulation by one system clock edge. All components
// evaluate against the same pre-edge frame; their writes become visible on
// the next step.
//
func (s *Sim) Step() {
	for _, f := range s.cs {
		f(s)
	}
	s.cycle++
	s.r0, s.r1 = s.r1, s.r0
}

// Cycles returns the number of clock edges simulated so far.
//
func (s *Sim) Cycles() uint64 {
	return s.cycle
}

// A Socket maps signal names to register numbers in a simulation.
//
type Socket struct {
	m map[string]int
	s *Sim
}

func newSocket() *Socket {
	return &Socket{
		m: make(map[string]int),
		s: &Sim{},
	}
}

// Reg returns the register number allocated to the given signal name.
// This function panics if the signal does not exist.
//
func (sk *Socket) Reg(name string) int {
	n, ok := sk.m[name]
	if !ok {
		panic("signal " + name + " does not exist")
	}
	return n
}

// RegOrNew returns the register number allocated to the given signal name.
// If no such signal exists a new register is allocated.
//
func (sk *Socket) RegOrNew(name string) int {
	n, ok := sk.m[name]
	if !ok {
		n = sk.s.allocReg()
		sk.m[name] = n
	}
	return n
}
