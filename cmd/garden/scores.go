package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shared-garden/internal/platform/tui"
	"github.com/vovakirdan/shared-garden/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [player]",
	Short: "Show the leaderboard",
	Long: `Display the best scores of finished games, or one player's history.

Examples:
  garden scores
  garden scores ann
  garden scores --tui
  garden scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive leaderboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded game")
}

func runScores(_ *cobra.Command, args []string) {
	cfg, err := loadConfig(nil)
	if err != nil {
		exitf("%v", err)
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("opening scores database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearGames(); err != nil {
			store.Close()
			exitf("clearing scores: %v", err)
		}
		fmt.Println("All recorded games deleted.")
	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			store.Close()
			exitf("%v", err)
		}
	case len(args) == 1:
		printHistory(store, args[0])
	default:
		printTopScores(store)
	}
}

func printTopScores(store *storage.Store) {
	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		store.Close()
		exitf("retrieving scores: %v", err)
	}

	fmt.Println("High Scores")
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Finish a 'garden play' game to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-4s  %s\n", "Rank", "Player", "Score", "Won", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-4s  %s\n", "----", "------", "-----", "---", "----")
	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-12s  %-6d  %-4s  %s\n", i+1, e.PlayerID, e.Score, won, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printHistory(store *storage.Store, player string) {
	history, err := store.PlayerHistory(player, flagScoresLimit)
	if err != nil {
		store.Close()
		exitf("retrieving history: %v", err)
	}

	fmt.Printf("Games of %s\n", player)
	fmt.Println()
	if len(history) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	fmt.Printf("  %-6s  %-4s  %s\n", "Score", "Won", "Date")
	fmt.Printf("  %-6s  %-4s  %s\n", "-----", "---", "----")
	best := 0
	for _, e := range history {
		won := ""
		if e.Won {
			won = "yes"
		}
		best = max(best, e.Score)
		fmt.Printf("  %-6d  %-4s  %s\n", e.Score, won, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Printf("Best: %d\n", best)
}
