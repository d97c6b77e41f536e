package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/loop"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on this terminal",
	Long: `Start a run on a random level.

Controls:
  Arrows/WASD  - Move (two keys move diagonally)
  Space        - Fire
  P/Esc        - Pause
  R            - Restart on a new random level
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More health, longer invulnerability after a hit
  normal - Enemies start slightly faster
  hard   - Less health, enemies start fast and are not speed-capped
  fixed  - No progression

Logs are written to ~/.shooter/shooter.log.

Examples:
  shooter play
  shooter play --difficulty easy
  shooter play --config ./my-shooter.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("play needs a terminal; try 'shooter simulate' instead")
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "shooter")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works, it just keeps no records.
		logger.Warn("could not open scores database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	sched := loop.New(cfg, seed(),
		loop.WithLogger(logger),
		loop.WithTickRate(flagFPS),
	)
	return tui.Run(cmd.Context(), sched, store, logger)
}
