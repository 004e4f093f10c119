// wego is a terminal wargame where both sides plan orders simultaneously
// and then watch the turn resolve.
//
// Usage:
//
//	wego list                  - List available scenarios
//	wego play <scenario>       - Play a scenario
//	wego menu                  - Pick scenarios interactively
//	wego simulate <scenario>   - Resolve a scenario's scripted turns headlessly
//	wego history [battle-id]   - Show recorded battles or one battle's turns
//	wego serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.wego/config.yaml)
//	--fps <rate>        - Simulation ticks shown per second
//	--ticks <n>         - Ticks per turn (0 = scenario value)
//	--db <path>         - Database path (default: ~/.wego/battles.db)
//	--scenarios <dir>   - Extra scenario directory
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log file for interactive commands
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/config"
	// Import built-in scenarios to register them
	_ "github.com/vovakirdan/tui-wego/internal/scenario/builtin"
)

var (
	// Global flags
	flagConfig      string
	flagFPS         int
	flagTicks       int
	flagDBPath      string
	flagScenarioDir string
	flagLogLevel    string
	flagLogFile     string
)

// app is the state shared by every command, set up before any of them runs.
var app struct {
	cfg    config.Config
	logger *log.Logger // stderr, for headless commands
	tuiLog *log.Logger // --log-file or discarded, for commands owning the terminal
	closer io.Closer
}

func main() {
	err := rootCmd.Execute()
	if app.closer != nil {
		app.closer.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wego",
	Short: "WEGO - simultaneous-turn battles in your terminal",
	Long: `WEGO is a terminal wargame. Every turn both sides plan orders for their
regiments, then the turn resolves tick by tick while orders are locked.

Available commands:
  list      - Show all available scenarios
  play      - Play a specific scenario directly
  menu      - Interactive scenario picker
  simulate  - Resolve scripted turns without a UI
  history   - Show recorded battles
  serve     - Start SSH server for remote play

Examples:
  wego list
  wego play skirmish
  wego menu --fps 100
  wego simulate drill --turns 5
  wego serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Simulation ticks shown per second (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTicks, "ticks", 0, "Ticks per turn (overrides config and scenario)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to battle database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagScenarioDir, "scenarios", "", "Directory with extra scenario files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive commands to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config, applies flag overrides, builds the loggers and
// registers scenarios from the configured directory.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Simulation.TickRate = flagFPS
		cfg.Simulation.Pace = ""
	}
	if flags.Changed("ticks") {
		cfg.Simulation.TicksPerTurn = flagTicks
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("scenarios") {
		cfg.Scenarios.Dir = flagScenarioDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg

	level := log.InfoLevel
	if cfg.Log.Level != "" {
		if level, err = log.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
			return err
		}
	}

	app.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wego",
		Level:           level,
	})

	app.tuiLog = log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		app.closer = f
		app.tuiLog = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Level:           level,
		})
	}

	if cfg.Scenarios.Dir != "" {
		registerScenarioDir(config.ExpandHome(cfg.Scenarios.Dir), app.logger)
	}
	return nil
}
