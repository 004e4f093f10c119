package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/platform/tui"
	"github.com/vovakirdan/tui-wego/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Play a scenario",
	Long: `Start a battle from the specified scenario.

Each turn has two phases. During PLANNING you give orders; END TURN locks
them and the turn resolves tick by tick.

Controls:
  Arrows/hjkl  - Move cursor
  Space        - Select regiment under cursor
  Tab          - Select next regiment
  M            - Move: pick a destination, Enter to confirm
  R            - Rotate: point the cursor, Enter to confirm
  O            - Hold position
  X            - Cancel the selected regiment's order
  E/Enter      - End turn
  Ctrl+Y       - Copy a battle report to the clipboard
  ?            - Full help
  Esc          - Leave targeting, then the battle
  Q/Ctrl+C     - Quit

Examples:
  wego play skirmish
  wego play hills --ticks 40
  wego play drill --fps 100`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	scenarioID := args[0]

	if !registry.Exists(scenarioID) {
		return fmt.Errorf("unknown scenario %q, run 'wego list' to see available scenarios", scenarioID)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	b, err := tui.StartBattle(store, scenarioID, cfg.TicksPerTurn, "local")
	if err != nil {
		return fmt.Errorf("cannot start battle: %w", err)
	}
	app.tuiLog.Info("battle started", "scenario", scenarioID, "battle", b.ID())

	_, err = tui.Run(b, tui.Options{
		Config:   cfg,
		Recorder: tui.Recorder(store),
		Logger:   app.tuiLog,
	})
	if err != nil {
		return fmt.Errorf("error running battle: %w", err)
	}

	fmt.Printf("Battle %s ended after %d turns.\n", b.ID(), b.Controller().Turn())
	return nil
}
