// garden is a multiplayer tile-placement game for the terminal.
//
// Usage:
//
//	garden play [players...]  - Hot-seat game in this terminal
//	garden serve              - Host a match over HTTP, WebSocket and SSH
//	garden state              - Print the state of a running match
//	garden scores [player]    - Show the leaderboard or a player's history
//	garden catalog            - List the plant species
//
// Global flags:
//
//	--config <path>   - Config file (default: search ~/.garden, ./configs)
//	--preset <name>   - Rules preset: casual, standard, harsh
//	--seed <value>    - RNG seed for a reproducible deck
//	--db <path>       - Scores database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagPreset string
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "Shared Garden - grow a garden, dodge the pests",
	Long: `Shared Garden is a turn-based tile-placement game for 1 to 6 players.
Draft plants, grow them for points and place the pests the deck forces on you.

Available commands:
  play     - Hot-seat game in this terminal
  serve    - Host a match for HTTP, WebSocket and SSH clients
  state    - Print the state of a running match
  scores   - View the leaderboard
  catalog  - List the plant species

Examples:
  garden play ann bob
  garden play --preset casual
  garden serve --http :3000 --ssh :23234
  garden state --url http://localhost:3000
  garden scores ann`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to garden config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Rules preset: casual, standard, harsh")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, then time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogCmd)
}
