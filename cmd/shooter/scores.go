package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresReset bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs stored in the scores database.

Examples:
  shooter scores
  shooter scores --limit 20
  shooter scores --tui
  shooter scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultTopLimit, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete every stored run")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the runs in an interactive table")
}

func runScores(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresReset {
		if err := store.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All scores deleted.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(ctx, store, width, height)
	}

	scores, err := store.TopScores(ctx, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "High Scores")
	fmt.Fprintln(out)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'shooter play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-4s  %s\n", "Rank", "Score", "Level", "Wave", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %-5s  %-4s  %s\n", "----", "-----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %-5d  %-4d  %s\n", i+1, e.Score, e.Level+1, e.Wave, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d\n", scores[0].Score)
	return nil
}
