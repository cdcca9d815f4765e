package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/daibit/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive habit board",
	Long: `Launch the interactive terminal board.

Each habit shows today's count against its target, a heatmap of recent
days in the theme's accent colour, and its current streak. Changes made
by other daibit processes are picked up automatically with the file
backend, and edits to the config file are applied while running.

Key bindings:
  j/k, ↑/↓    Move selection
  space, +    Log one for today
  -           Undo one for today
  a           Next accent
  b           Next background
  r           Reload from storage
  ?           Show help
  q           Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.RunOptions{
		Config:     cfg,
		Store:      stateStore,
		WatchPath:  statePath(),
		ConfigPath: globalOpts.configPath,
		Logger:     logger,
	})
}
