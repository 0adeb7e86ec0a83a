package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs for a game",
	Long: `Display the top 10 runs and overall stats for a game (default: pacman).

Examples:
  pacman scores
  pacman scores --db ./scores.db`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := pacman.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pacman list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := printScores(cmd, store, gameID, game.Title()); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(cmd *cobra.Command, store *storage.Store, gameID, title string) error {
	out := cmd.OutOrStdout()

	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'pacman play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-9s  %-7s  %-6s  %-10s  %s\n", "Rank", "Score", "Outcome", "Pellets", "Time", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-9s  %-7s  %-6s  %-10s  %s\n", "----", "-----", "-------", "-------", "----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-9s  %-7d  %-6s  %-10s  %s\n",
			i+1, r.Score, r.Outcome, r.Pellets, r.Duration.Round(time.Second), player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	outcomes, err := store.OutcomeCounts(gameID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Games: %d  Avg: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	fmt.Fprintf(out, "Won: %d  Lost: %d  Abandoned: %d\n", outcomes["won"], outcomes["lost"], outcomes["abandoned"])
	return nil
}
