package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shared-garden/internal/core"
	"github.com/vovakirdan/shared-garden/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [players...]",
	Short: "Play a hot-seat game in this terminal",
	Long: `Start a local game. Every player takes turns at the same keyboard.
Players default to the ones in the config file.

Controls:
  Arrows/hjkl  - Move the cursor
  Tab/S-Tab    - Select a draft tile
  Enter/Space  - Place the selected tile (or a forced pest)
  X            - Place a forced pest
  G            - Grow the plant under the cursor
  N            - End the turn
  ?            - Full help
  Q/Ctrl+C     - Quit

Examples:
  garden play
  garden play ann bob cid
  garden play --preset harsh --seed 42`,
	Args: cobra.MaximumNArgs(6),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, err := loadConfig(args)
	if err != nil {
		exitf("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Log lines would tear the alternate screen.
	logger := newLogger(io.Discard)
	m, err := startMatch(cfg, false, logger)
	if err != nil {
		exitf("cannot start game: %v", err)
	}
	defer m.Close()

	err = tui.Run(m.host, m.codec, tui.ModelConfig{
		SessionID: "local",
		Seats:     cfg.Players,
		Buffer:    cfg.Server.SessionBuffer,
		Screen:    core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: cfg.Rules.Seed},
	})
	if err != nil {
		m.Close()
		exitf("%v", err)
	}
}
