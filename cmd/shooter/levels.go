package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/entity"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the configured levels",
	Long:  `Shows every level of the active configuration with its enemies, bonuses and obstacles.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "shooter")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	maxNameLen := len("Name")
	for _, l := range cfg.Levels {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Fprintf(out, "  %-3s  %-*s  %-24s  %-7s  %s\n", "#", maxNameLen, "Name", "Enemies", "Bonuses", "Obstacles")
	fmt.Fprintf(out, "  %-3s  %-*s  %-24s  %-7s  %s\n", "-", maxNameLen, "----", "-------", "-------", "---------")
	for i, l := range cfg.Levels {
		var enemies []string
		for _, v := range entity.Variants {
			if n := l.EnemyCount(v); n > 0 {
				enemies = append(enemies, fmt.Sprintf("%d %s", n, v))
			}
		}
		fmt.Fprintf(out, "  %-3d  %-*s  %-24s  %d/%-5d  %d\n",
			i+1, maxNameLen, l.Name, strings.Join(enemies, ", "), l.Bonuses, l.MaxBonus, len(l.Obstacles))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'shooter simulate --level <n>' to try a level headless.")
	return nil
}
