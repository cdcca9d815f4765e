package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/daibit/internal/adapter/output"
	"github.com/jmylchreest/daibit/internal/store"
)

var stateOpts struct {
	format string
	seed   bool
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the stored state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored state",
	Long: `Print the stored state record, including any fields daibit does not
use itself. Fails if nothing is stored or the stored entry is corrupt.`,
	Args: cobra.NoArgs,
	RunE: runStateShow,
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored state",
	Long: `Remove the stored state so the next run starts from the default habits.

With --seed the default habits are written immediately.`,
	Args: cobra.NoArgs,
	RunE: runStateReset,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd, stateResetCmd)

	stateShowCmd.Flags().StringVarP(&stateOpts.format, "format", "f", "json",
		"Output format (json, yaml)")
	stateResetCmd.Flags().BoolVar(&stateOpts.seed, "seed", false,
		"Write the default state after removing")
}

func runStateShow(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(stateOpts.format)
	if err != nil {
		return err
	}

	snap, err := stateStore.Load()
	if err != nil {
		if errors.Is(err, store.ErrNoState) {
			return fmt.Errorf("%w under key %q", err, stateStore.Key())
		}
		return err
	}
	return output.FormatState(cmd.OutOrStdout(), format, snap.State)
}

func runStateReset(cmd *cobra.Command, args []string) error {
	if err := stateStore.Reset(); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}

	msg := "State removed"
	if stateOpts.seed {
		if err := stateStore.Save(cfg.SeedState()); err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		msg = "State reset to defaults"
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
