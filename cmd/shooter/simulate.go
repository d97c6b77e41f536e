package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/loop"
)

var (
	flagTicks     int
	flagLevel     int
	flagAutopilot bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by the autopilot",
	Long: `Run the simulation without a terminal UI and print a summary.

The autopilot faces the nearest enemy and fires, backs away from enemies that
get close and collects bonuses once the arena is clear. With the same --seed,
--level and config the run is fully reproducible and prints the same hash.

Examples:
  shooter simulate
  shooter simulate --ticks 10000 --seed 42 --level 4
  shooter simulate --autopilot=false --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3000, "Maximum number of ticks to run")
	simulateCmd.Flags().IntVar(&flagLevel, "level", 0, "Level number starting at 1 (0 = random)")
	simulateCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Drive the player with the autopilot")
}

// simStats aggregates tick statistics over a whole run.
type simStats struct {
	rejections map[engine.Reason]int
	events     map[string]int
	pruned     int
}

func (s *simStats) ObserveTick(t loop.TickStats) {
	for r, n := range t.Rejections {
		s.rejections[r] += n
	}
	s.pruned += t.Pruned
}

func (s *simStats) ObserveEvent(e loop.Event) {
	s.events[loop.EventName(e)]++
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger, err := newLogger(os.Stderr, "shooter-sim")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	runSeed := seed()
	stats := &simStats{rejections: make(map[engine.Reason]int), events: make(map[string]int)}
	sched := loop.New(cfg, runSeed,
		loop.WithManualStep(),
		loop.WithLogger(logger),
		loop.WithObserver(stats),
	)

	if flagLevel == 0 {
		err = sched.Start(ctx)
	} else if err = sched.Initialize(flagLevel - 1); err == nil {
		err = sched.Play(ctx)
	}
	if err != nil {
		return err
	}

	pilot := loop.Autopilot{}
	for i := 0; i < flagTicks && sched.IsRunning(); i++ {
		if ctx.Err() != nil {
			break
		}
		if flagAutopilot {
			sched.Submit(pilot.Next(sched.Snapshot()))
		}
		sched.Step()
	}

	printSummary(cmd.OutOrStdout(), sched, stats, runSeed)
	return nil
}

func printSummary(w io.Writer, sched *loop.Scheduler, stats *simStats, runSeed int64) {
	snap := sched.Snapshot()
	outcome := "survived"
	if sched.State() == loop.StateGameOver {
		outcome = "game over"
	}

	fmt.Fprintf(w, "Level %d - %s (seed %d)\n\n", snap.Level+1, snap.LevelName, runSeed)
	fmt.Fprintf(w, "  %-12s %d\n", "Ticks", snap.Tick)
	fmt.Fprintf(w, "  %-12s %d\n", "Score", snap.Score)
	fmt.Fprintf(w, "  %-12s %d\n", "Wave", snap.Wave)
	fmt.Fprintf(w, "  %-12s %d/%d\n", "Health", snap.Health, snap.MaxHealth)
	fmt.Fprintf(w, "  %-12s %s\n", "Outcome", outcome)
	fmt.Fprintf(w, "  %-12s %d\n", "Pruned", stats.pruned)
	fmt.Fprintf(w, "  %-12s %#016x\n", "Hash", snap.Hash())

	var parts []string
	for _, r := range engine.Reasons {
		parts = append(parts, fmt.Sprintf("%s=%d", r, stats.rejections[r]))
	}
	fmt.Fprintf(w, "  %-12s %s\n", "Rejections", strings.Join(parts, " "))

	parts = parts[:0]
	for _, name := range []string{"wave", "milestone", "state", "game_over"} {
		parts = append(parts, fmt.Sprintf("%s=%d", name, stats.events[name]))
	}
	fmt.Fprintf(w, "  %-12s %s\n", "Events", strings.Join(parts, " "))
}
