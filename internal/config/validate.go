package config

import "github.com/pkg/errors"

// Validate checks configuration correctness. It performs declarative
// validation only and never mutates the configuration.
func Validate(cfg *Config) error {
	if cfg.Controller.ClockHz <= 0 {
		return errors.New("controller: clock_hz must be positive")
	}
	if cfg.Controller.RefreshHz <= 0 {
		return errors.New("controller: refresh_hz must be positive")
	}
	if cfg.Controller.ClockHz/cfg.Controller.RefreshHz/2 < 1 {
		return errors.Errorf("controller: refresh_hz %d too fast for clock_hz %d",
			cfg.Controller.RefreshHz, cfg.Controller.ClockHz)
	}
	if cfg.Controller.DebounceCycles < 0 {
		return errors.New("controller: debounce_cycles must not be negative")
	}

	if cfg.Run.StepsPerSecond <= 0 {
		return errors.New("run: steps_per_second must be positive")
	}

	var prev uint64
	for i, ev := range cfg.Scenario {
		if i > 0 && ev.At < prev {
			return errors.Errorf("scenario: event %d at cycle %d precedes event %d at cycle %d",
				i, ev.At, i-1, prev)
		}
		prev = ev.At
		if ev.SetValue != nil && *ev.SetValue > 31 {
			return errors.Errorf("scenario: event %d set_value %d exceeds the 5-bit input range",
				i, *ev.SetValue)
		}
	}

	if p := cfg.Panel; p != nil {
		if p.Endpoint == "" {
			return errors.New("panel: endpoint required")
		}
		if p.TimeoutMs <= 0 {
			return errors.New("panel: timeout_ms must be positive")
		}
		if p.ReassertMs < 0 {
			return errors.New("panel: reassert_ms must not be negative")
		}
	}

	if t := cfg.Telemetry; t != nil {
		if t.Broker == "" {
			return errors.New("telemetry: broker required")
		}
		if t.QoS > 2 {
			return errors.Errorf("telemetry: qos %d out of range 0-2", t.QoS)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("logging: unknown level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return errors.Errorf("logging: unknown format %q", cfg.Logging.Format)
	}

	return nil
}
