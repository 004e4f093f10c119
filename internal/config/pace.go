package config

import "strings"

// PacePreset represents a named simulation playback speed.
type PacePreset string

const (
	PaceSlow    PacePreset = "slow"
	PaceNormal  PacePreset = "normal"
	PaceFast    PacePreset = "fast"
	PaceInstant PacePreset = "instant"
)

// pacePresets maps presets to a tick rate (ticks per second).
var pacePresets = map[PacePreset]int{
	PaceSlow:    25,
	PaceNormal:  50,
	PaceFast:    100,
	PaceInstant: MaxTickRate,
}

// TickRateForPace returns the tick rate for a preset, or 0 if unknown.
func TickRateForPace(preset PacePreset) int {
	return pacePresets[PacePreset(strings.ToLower(string(preset)))]
}

// ApplyPacePreset sets the tick rate from a preset.
// Unknown presets leave the config unchanged.
func ApplyPacePreset(cfg *Config, preset PacePreset) {
	rate := TickRateForPace(preset)
	if rate == 0 {
		return
	}
	cfg.Simulation.Pace = strings.ToLower(string(preset))
	cfg.Simulation.TickRate = rate
}
