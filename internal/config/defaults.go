package config

import (
	_ "embed"
)

//go:embed defaults/wego.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			TicksPerTurn: 0,
			TickRate:     50,
		},
		Storage: StorageConfig{
			DBPath: "~/.wego/battles.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
