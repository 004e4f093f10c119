package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-wego/internal/core"
	"github.com/vovakirdan/tui-wego/internal/registry"
	"github.com/vovakirdan/tui-wego/internal/scenario"
	"github.com/vovakirdan/tui-wego/internal/storage"
)

// runtimeConfig builds the battle view config from the terminal size and app config.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickRate:     app.cfg.Simulation.TickRate,
		TicksPerTurn: app.cfg.Simulation.TicksPerTurn,
	}
}

// openStore opens the battle database. Interactive play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(app.cfg.Storage.DBPath)
	if err != nil {
		app.logger.Warn("could not open battle database", "path", app.cfg.Storage.DBPath, "err", err)
		return nil
	}
	return store
}

// registerScenarioDir registers every valid scenario file under dir.
// Files whose ID is already taken are skipped.
func registerScenarioDir(dir string, logger *log.Logger) {
	loader := scenario.NewLoader(dir)
	scenarios, err := loader.LoadAll()
	if err != nil {
		logger.Warn("cannot load scenarios", "dir", dir, "err", err)
		return
	}

	for _, sc := range scenarios {
		if registry.Exists(sc.ID) {
			logger.Warn("scenario id already registered, skipping", "id", sc.ID, "file", sc.FilePath)
			continue
		}
		path := sc.FilePath
		loaded := sc
		registry.Register(sc.ID, func() *scenario.Scenario {
			// Re-read so edits show up without a restart
			if fresh, err := loader.LoadFile(path); err == nil && fresh.ID == loaded.ID {
				return fresh
			}
			return loaded
		})
		logger.Debug("scenario registered", "id", sc.ID, "file", path)
	}
}

// idleTimeout converts the configured idle minutes.
func idleTimeout() time.Duration {
	return time.Duration(app.cfg.Server.IdleMinutes) * time.Minute
}
