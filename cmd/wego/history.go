package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/platform/tui"
	"github.com/vovakirdan/tui-wego/internal/storage"
)

var (
	flagLimit  int
	flagDelete bool
	flagAll    bool
)

var historyCmd = &cobra.Command{
	Use:   "history [battle-id]",
	Short: "Show recorded battles",
	Long: `Without arguments, list the most recent battles.
With a battle ID, show that battle's resolved turns and its latest state.

Examples:
  wego history
  wego history --limit 5
  wego history 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  wego history 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --all
  wego history 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Battles to list")
	historyCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the given battle")
	historyCmd.Flags().BoolVar(&flagAll, "all", false, "Print the state after every turn")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(app.cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening battle database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return listBattles(store)
	}
	return showBattle(store, args[0])
}

func listBattles(store *storage.Store) error {
	battles, err := store.RecentBattles(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent battles")
	fmt.Println()

	if len(battles) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Run 'wego play <scenario>' to start one!")
		return nil
	}

	fmt.Printf("  %-36s  %-12s  %-8s  %5s  %s\n", "ID", "Scenario", "Source", "Turns", "Last played")
	fmt.Printf("  %-36s  %-12s  %-8s  %5s  %s\n", "--", "--------", "------", "-----", "-----------")
	for _, b := range battles {
		fmt.Printf("  %-36s  %-12s  %-8s  %5d  %s\n",
			b.ID, b.ScenarioID, b.Source, b.Turns, humanize.Time(b.LastPlayed))
	}
	return nil
}

func showBattle(store *storage.Store, id string) error {
	rec, err := store.Battle(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no battle with id %q", id)
	}

	if flagDelete {
		if err := store.DeleteBattle(id); err != nil {
			return err
		}
		fmt.Printf("Deleted battle %s.\n", id)
		return nil
	}

	turns, err := store.Turns(id)
	if err != nil {
		return err
	}

	fmt.Printf("Battle %s - %s\n", rec.ID, rec.ScenarioID)
	fmt.Printf("Started %s (%s), %s ticks per turn\n",
		humanize.Time(rec.CreatedAt), rec.Source, humanize.Comma(int64(rec.TicksPerTurn)))
	fmt.Println()

	if len(turns) == 0 {
		fmt.Println("No turns resolved yet.")
		return nil
	}

	if flagAll {
		for _, t := range turns {
			fmt.Print(tui.BattleReport(t.Snapshot))
			fmt.Println()
		}
		return nil
	}

	fmt.Printf("  %-6s  %6s  %s\n", "Turn", "Ticks", "Recorded")
	fmt.Printf("  %-6s  %6s  %s\n", "----", "-----", "--------")
	for _, t := range turns {
		fmt.Printf("  %-6s  %6d  %s\n", humanize.Ordinal(t.Turn), t.Ticks, t.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Println()
	fmt.Print(tui.BattleReport(turns[len(turns)-1].Snapshot))
	return nil
}
