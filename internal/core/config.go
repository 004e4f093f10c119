package core

// RuntimeConfig contains configuration passed to the battle view.
type RuntimeConfig struct {
	ScreenW      int // Screen width in characters
	ScreenH      int // Screen height in characters
	TickRate     int // Simulation ticks rendered per second
	TicksPerTurn int // 0 = use the scenario's value
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 50,
	}
}
