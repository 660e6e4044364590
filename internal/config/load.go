package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and decodes the configuration file at path and fills in
// defaults. It does not validate; call Validate on the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Run.StepsPerSecond == 0 {
		cfg.Run.StepsPerSecond = 1000
	}
	if cfg.Panel != nil {
		if cfg.Panel.TimeoutMs == 0 {
			cfg.Panel.TimeoutMs = 1000
		}
		if cfg.Panel.ReassertMs == 0 {
			cfg.Panel.ReassertMs = 5000
		}
		if cfg.Panel.UnitID == 0 {
			cfg.Panel.UnitID = 1
		}
	}
	if cfg.Telemetry != nil {
		if cfg.Telemetry.ClientID == "" {
			cfg.Telemetry.ClientID = "parklot"
		}
		if cfg.Telemetry.Topic == "" {
			cfg.Telemetry.Topic = "parklot/occupancy"
		}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
