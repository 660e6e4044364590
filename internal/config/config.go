// Package config holds the YAML configuration for the parklot command:
// controller constants, run pacing, the stimulus scenario and the optional
// panel/telemetry bridges.
package config

// Config is the root of the configuration file.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Run        RunConfig        `yaml:"run"`
	Scenario   []Event          `yaml:"scenario"`
	Panel      *PanelConfig     `yaml:"panel"`
	Telemetry  *TelemetryConfig `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ControllerConfig carries the hardware constants: the system clock, the
// display refresh rate deriving the divider threshold, and the debounce
// filter depth (0 selects the pass-through debouncer).
type ControllerConfig struct {
	ClockHz        int `yaml:"clock_hz"`
	RefreshHz      int `yaml:"refresh_hz"`
	DebounceCycles int `yaml:"debounce_cycles"`
}

// RunConfig paces the simulation. StepsPerSecond applies in free-run mode;
// MaxCycles of 0 means unbounded.
type RunConfig struct {
	StepsPerSecond int    `yaml:"steps_per_second"`
	MaxCycles      uint64 `yaml:"max_cycles"`
}

// Event drives boundary inputs at a given cycle. Nil fields leave the
// corresponding input unchanged.
type Event struct {
	At        uint64 `yaml:"at"`
	Reset     *bool  `yaml:"reset"`
	Entry     *bool  `yaml:"entry"`
	Exit      *bool  `yaml:"exit"`
	Start     *bool  `yaml:"start"`
	Stop      *bool  `yaml:"stop"`
	SetValue  *uint8 `yaml:"set_value"`
	SetEnable *bool  `yaml:"set_enable"`
}

// PanelConfig points at a remote Modbus display unit mirroring the
// occupancy registers.
type PanelConfig struct {
	Endpoint     string `yaml:"endpoint"`
	UnitID       uint8  `yaml:"unit_id"`
	RegisterBase uint16 `yaml:"register_base"`
	CoilBase     uint16 `yaml:"coil_base"`
	ReassertMs   int    `yaml:"reassert_ms"`
	TimeoutMs    int    `yaml:"timeout_ms"`
}

// TelemetryConfig points at the MQTT broker receiving retained occupancy
// snapshots.
type TelemetryConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	QoS      uint8  `yaml:"qos"`
}

// LoggingConfig selects the slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
