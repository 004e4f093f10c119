package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/driver"
	"github.com/vovakirdan/tui-wego/internal/platform/tui"
	"github.com/vovakirdan/tui-wego/internal/registry"
	"github.com/vovakirdan/tui-wego/internal/storage"
)

var (
	flagTurns    int
	flagNoRecord bool
	flagJSON     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Resolve a scenario's scripted turns without a UI",
	Long: `Play a scenario headlessly. At the start of every planning phase the
scenario's scripted orders for that turn are issued, then the whole turn is
resolved. Each resolved turn is recorded unless --no-record is given.

Examples:
  wego simulate drill
  wego simulate skirmish --turns 10 --log-level debug
  wego simulate hills --no-record --json > final.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTurns, "turns", 0, "Turns to resolve (0 = length of the script)")
	simulateCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the battle")
	simulateCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the final snapshot as JSON")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	scenarioID := args[0]

	sc, err := registry.Create(scenarioID)
	if err != nil {
		return fmt.Errorf("%w, run 'wego list' to see available scenarios", err)
	}

	var store *storage.Store
	if !flagNoRecord {
		if store = openStore(); store != nil {
			defer store.Close()
		}
	}

	b, err := tui.StartBattle(store, scenarioID, app.cfg.Simulation.TicksPerTurn, "headless")
	if err != nil {
		return fmt.Errorf("cannot start battle: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := driver.Run(ctx, b, sc.Script, driver.Options{
		Turns:    flagTurns,
		Recorder: tui.Recorder(store),
		Logger:   app.logger,
	})
	if err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}

	if flagJSON {
		out, err := json.MarshalIndent(res.Final, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Resolved %s in %s ticks.\n",
		english.Plural(res.Turns, "turn", "turns"), humanize.Comma(int64(res.Ticks)))
	fmt.Println()
	fmt.Print(tui.BattleReport(res.Final))
	if store != nil {
		fmt.Println()
		fmt.Printf("Recorded as battle %s. Run 'wego history %s' for its turns.\n", b.ID(), b.ID())
	}
	return nil
}

