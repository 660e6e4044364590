// Package panel mirrors the controller's occupancy registers to remote
// Modbus TCP display units: the count and a status word as holding
// registers, the individual flags as coils.
package panel

import (
	"time"

	"github.com/jrv81/parklot"
	"github.com/jrv81/parklot/internal/config"
)

// Status word bits, register block layout [count, status].
const (
	flagOpen   = 1 << 0
	flagFull   = 1 << 1
	flagClosed = 1 << 2
)

// A Mirror pushes occupancy snapshots to one display unit. Unchanged
// snapshots are skipped until the re-assert interval elapses, then the full
// block is rewritten so a power-cycled display recovers its state.
type Mirror struct {
	client   endpointClient
	regBase  uint16
	coilBase uint16
	reassert time.Duration

	last      parklot.Snapshot
	lastWrite time.Time
	primed    bool

	now func() time.Time // test hook
}

// New connects to the display unit described by cfg.
func New(cfg *config.PanelConfig) (*Mirror, error) {
	c, err := newTCPClient(cfg.Endpoint, cfg.UnitID, time.Duration(cfg.TimeoutMs)*time.Millisecond)
	if err != nil {
		return nil, err
	}
	return newMirror(c, cfg), nil
}

func newMirror(c endpointClient, cfg *config.PanelConfig) *Mirror {
	return &Mirror{
		client:   c,
		regBase:  cfg.RegisterBase,
		coilBase: cfg.CoilBase,
		reassert: time.Duration(cfg.ReassertMs) * time.Millisecond,
		now:      time.Now,
	}
}

// Close releases the connection.
func (m *Mirror) Close() error {
	return m.client.Close()
}

// Sync pushes snap to the display if it differs from the last pushed state
// or the re-assert interval has elapsed. It reports whether a write
// happened.
func (m *Mirror) Sync(snap parklot.Snapshot) (bool, error) {
	snap.Cycle = 0 // only the externally visible state matters
	due := m.reassert > 0 && m.now().Sub(m.lastWrite) >= m.reassert
	if m.primed && snap == m.last && !due {
		return false, nil
	}

	if err := m.client.WriteRegisters(m.regBase, encodeRegisters(snap)); err != nil {
		return false, err
	}
	if err := m.client.WriteCoils(m.coilBase, []bool{snap.Open, snap.Full, snap.Closed}); err != nil {
		return false, err
	}

	m.last = snap
	m.lastWrite = m.now()
	m.primed = true
	return true, nil
}

func encodeRegisters(snap parklot.Snapshot) []uint16 {
	var status uint16
	if snap.Open {
		status |= flagOpen
	}
	if snap.Full {
		status |= flagFull
	}
	if snap.Closed {
		status |= flagClosed
	}
	return []uint16{uint16(snap.Count), status}
}
