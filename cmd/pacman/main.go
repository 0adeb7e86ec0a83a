// pacman is a terminal Pac-Man with a score history and an SSH server.
//
// Usage:
//
//	pacman list              - List available games
//	pacman play [game]       - Play a game (default: pacman)
//	pacman menu              - Start menu to pick games interactively
//	pacman serve             - Start SSH server for remote play
//	pacman scores [game]     - Show the best runs for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Use a custom game config YAML
//	--log-file <path>    - Write logs to a file (the TUI owns the terminal)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/telemetry"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

var (
	logger  = log.New(io.Discard)
	logFile io.Closer

	shutdownTelemetry = func(context.Context) error { return nil }
)

func main() {
	// Optional: OTEL_* and friends may come from a local .env file.
	//nolint:errcheck // env vars might be set directly
	godotenv.Load()

	err := rootCmd.Execute()
	teardown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Pac-Man in your terminal",
	Long: `A terminal Pac-Man: clear the maze of pellets while four pursuers
close in. Bonus fruit and extra lives appear over time.

Available commands:
  list     - Show all available games
  play     - Play directly
  menu     - Interactive menu with the score board
  serve    - Start SSH server for remote play
  scores   - View the best runs

Examples:
  pacman play
  pacman play --seed 42 --config ./fast.yaml
  pacman menu --log-file /tmp/pacman.log --log-level debug
  pacman serve --ssh :2222
  pacman scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup wires logging, telemetry and game settings before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	l, closer, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	logger, logFile = l, closer

	pacman.SetConfigPath(flagConfig)
	pacman.SetLogger(logger)

	shutdown, err := telemetry.Setup(cmd.Context())
	if err != nil {
		logger.Warn("telemetry setup failed, running without traces", "err", err)
		return nil
	}
	shutdownTelemetry = shutdown
	return nil
}

func teardown() {
	if err := shutdownTelemetry(context.Background()); err != nil {
		logger.Warn("telemetry shutdown failed", "err", err)
	}
	if logFile != nil {
		logFile.Close()
	}
}

// newLogger returns a file logger, or a discarding one when path is empty.
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if path == "" {
		return log.New(io.Discard), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "pacman",
		Level:           lvl,
	})
	return l, f, nil
}
