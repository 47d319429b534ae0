package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the brick breaker SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu.
Scores are stored per-server (all users share the same table) under
their SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.brickbreaker/host_key

Examples:
  brickbreaker serve                           # Listen on :23234 with auto-generated key
  brickbreaker serve --ssh :2222               # Listen on port 2222
  brickbreaker serve --host-key ./my_host_key  # Use specific host key
  brickbreaker serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, logCloser, err := newLogger(false)
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Game = game
	cfg.Logger = logger.WithPrefix("brickbreaker-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	_, port, splitErr := net.SplitHostPort(cfg.Address)
	if splitErr != nil {
		port = "23234"
	}
	fmt.Printf("Starting brick breaker SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
