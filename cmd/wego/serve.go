package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WEGO SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a scenario menu and its own
battles. Battles are recorded in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.wego/host_key

Examples:
  wego serve                           # Listen on the configured address
  wego serve --ssh :2222               # Listen on port 2222
  wego serve --host-key ./my_host_key  # Use specific host key
  wego serve --db ./battles.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:      app.cfg.Server.Address,
		HostKeyPath:  app.cfg.Server.HostKeyPath,
		DBPath:       app.cfg.Storage.DBPath,
		IdleTimeout:  idleTimeout(),
		TickRate:     app.cfg.Simulation.TickRate,
		TicksPerTurn: app.cfg.Simulation.TicksPerTurn,
		Logger:       app.logger.WithPrefix("wego-ssh"),
	}
	if cmd.Flags().Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting WEGO SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
