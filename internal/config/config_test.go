package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wego.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPartialFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  tick_rate: 80\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.TickRate != 80 {
		t.Errorf("TickRate = %d, expected 80", cfg.Simulation.TickRate)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected debug", cfg.Log.Level)
	}
	// Untouched sections keep their defaults
	if cfg.Storage.DBPath != DefaultConfig().Storage.DBPath {
		t.Errorf("DBPath = %q, expected default", cfg.Storage.DBPath)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing custom file should fail")
	}

	bad := writeConfig(t, "simulation: [\n")
	if _, err := Load(bad); err == nil {
		t.Error("Load of malformed YAML should fail")
	}

	level := writeConfig(t, "log:\n  level: chatty\n")
	if _, err := Load(level); err == nil || !strings.Contains(err.Error(), "log level") {
		t.Errorf("Load with unknown level err = %v", err)
	}
}

func TestLoadPaceOverridesTickRate(t *testing.T) {
	path := writeConfig(t, "simulation:\n  tick_rate: 10\n  pace: Fast\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Simulation.TickRate != 100 {
		t.Errorf("TickRate = %d, expected 100", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Pace != "fast" {
		t.Errorf("Pace = %q, expected fast", cfg.Simulation.Pace)
	}
}

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name          string
		ticks, rate   int
		expTicks, exp int
	}{
		{"in range", 100, 60, 100, 60},
		{"negative ticks", -5, 60, 0, 60},
		{"huge ticks", 1 << 20, 60, MaxTicksPerTurn, 60},
		{"zero rate", 100, 0, 100, MinTickRate},
		{"huge rate", 100, 9999, 100, MaxTickRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Simulation.TicksPerTurn = tc.ticks
			cfg.Simulation.TickRate = tc.rate
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if cfg.Simulation.TicksPerTurn != tc.expTicks {
				t.Errorf("TicksPerTurn = %d, expected %d", cfg.Simulation.TicksPerTurn, tc.expTicks)
			}
			if cfg.Simulation.TickRate != tc.exp {
				t.Errorf("TickRate = %d, expected %d", cfg.Simulation.TickRate, tc.exp)
			}
		})
	}
}

func TestValidateRejectsUnknownPace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulation.Pace = "ludicrous"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject an unknown pace")
	}
}

func TestApplyPacePreset(t *testing.T) {
	cfg := DefaultConfig()

	ApplyPacePreset(&cfg, PaceSlow)
	if cfg.Simulation.TickRate != 25 {
		t.Errorf("slow TickRate = %d, expected 25", cfg.Simulation.TickRate)
	}

	ApplyPacePreset(&cfg, "bogus")
	if cfg.Simulation.TickRate != 25 || cfg.Simulation.Pace != "slow" {
		t.Errorf("unknown preset changed config: %+v", cfg.Simulation)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandHome("~/.wego/x.db"); got != filepath.Join(home, ".wego", "x.db") {
		t.Errorf("ExpandHome(~/.wego/x.db) = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome(/tmp/x.db) = %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("ExpandHome(~user/x) = %q", got)
	}
}
