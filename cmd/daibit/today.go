package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/daibit/internal/dates"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's date key",
	Long: `Print today's date as YYYY-MM-DD in UTC.

This is the key under which counts are recorded for the current day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), dates.Today())
		return err
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
