package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scenario picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a battle.
Leaving a battle with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start battle
  Tab          - Battle history
  Q            - Quit

Examples:
  wego menu
  wego menu --fps 100
  wego menu --db ./battles.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from history
		}

		b, err := tui.StartBattle(store, menuResult.ScenarioID, cfg.TicksPerTurn, "local")
		if err != nil {
			app.logger.Error("cannot start battle", "scenario", menuResult.ScenarioID, "err", err)
			continue
		}
		app.tuiLog.Info("battle started", "scenario", b.ScenarioID(), "battle", b.ID())

		goBack, err := tui.Run(b, tui.Options{
			Config:   cfg,
			Recorder: tui.Recorder(store),
			Logger:   app.tuiLog,
		})
		if err != nil {
			return err
		}
		if !goBack {
			return nil
		}
	}
}
