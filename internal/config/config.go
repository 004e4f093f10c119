// Package config provides YAML-based configuration loading and
// simulation pace presets for the wego platform.
package config

import (
	"fmt"
	"strings"
)

// Config contains all configuration for the game and its server.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Storage    StorageConfig    `yaml:"storage"`
	Scenarios  ScenariosConfig  `yaml:"scenarios"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
}

// SimulationConfig defines turn resolution parameters.
type SimulationConfig struct {
	TicksPerTurn int    `yaml:"ticks_per_turn"` // 0 = use the scenario's value
	TickRate     int    `yaml:"tick_rate"`      // Simulation ticks shown per second
	Pace         string `yaml:"pace,omitempty"` // "slow", "normal", "fast" or "instant"
}

// StorageConfig defines where battle history is kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ScenariosConfig defines where extra scenario files are searched.
type ScenariosConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// LogConfig defines logging behaviour.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn" or "error"
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path,omitempty"`
	IdleMinutes int    `yaml:"idle_minutes"`
}

// Limits for tick rate and turn length.
const (
	MinTickRate     = 1
	MaxTickRate     = 240
	MaxTicksPerTurn = 10000
)

// Validate clamps numeric values into range and rejects unknown names.
func (c *Config) Validate() error {
	if c.Simulation.TicksPerTurn < 0 {
		c.Simulation.TicksPerTurn = 0
	}
	if c.Simulation.TicksPerTurn > MaxTicksPerTurn {
		c.Simulation.TicksPerTurn = MaxTicksPerTurn
	}
	c.Simulation.TickRate = clampI(c.Simulation.TickRate, MinTickRate, MaxTickRate)
	if c.Server.IdleMinutes <= 0 {
		c.Server.IdleMinutes = DefaultConfig().Server.IdleMinutes
	}

	if c.Simulation.Pace != "" {
		if _, ok := pacePresets[PacePreset(strings.ToLower(c.Simulation.Pace))]; !ok {
			return fmt.Errorf("config: unknown pace %q", c.Simulation.Pace)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
