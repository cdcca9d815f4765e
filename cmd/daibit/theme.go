package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/daibit/internal/theme"
)

var themeOpts struct {
	accent     string
	background string
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme and its resolved classes",
	Args:  cobra.NoArgs,
	RunE:  runThemeShow,
}

var themeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the accent and/or background",
	Long: `Change the stored theme selection.

Examples:
  daibit theme set --accent violet
  daibit theme set --accent amber --background midnight`,
	Args: cobra.NoArgs,
	RunE: runThemeSet,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available accents and backgrounds",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeShowCmd, themeSetCmd, themeListCmd)

	themeSetCmd.Flags().StringVar(&themeOpts.accent, "accent", "",
		"Accent colour (emerald, cyan, violet, amber, rose)")
	themeSetCmd.Flags().StringVar(&themeOpts.background, "background", "",
		"Background style (aurora, midnight, carbon)")
}

func runThemeShow(cmd *cobra.Command, args []string) error {
	r := stateStore.LoadOrDefault(cfg.SeedState).Theme
	p := theme.NewPalette(r)
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "accent:      %s\n", p.Accent().Render(string(r.Accent)))
	fmt.Fprintf(w, "background:  %s\n", r.Background)
	fmt.Fprintf(w, "mapping:     %s\n", stateStore.Resolver().Mapping())
	fmt.Fprintf(w, "text class:  %s\n", r.AccentTextClass)
	fmt.Fprintf(w, "background class:\n  %s\n", r.BackgroundClass)
	fmt.Fprintln(w, "intensity:")
	for count := 0; count <= 4; count++ {
		tier := theme.TierFor(count)
		_, err := fmt.Fprintf(w, "  %d %s %-9s %s\n", count, p.Cell(count).Render("  "), tier, r.Intensity(count))
		if err != nil {
			return err
		}
	}
	return nil
}

func runThemeSet(cmd *cobra.Command, args []string) error {
	if themeOpts.accent == "" && themeOpts.background == "" {
		return fmt.Errorf("nothing to set: use --accent and/or --background")
	}

	state, err := loadForUpdate()
	if err != nil {
		return err
	}
	if themeOpts.accent != "" {
		a, err := theme.ParseAccent(themeOpts.accent)
		if err != nil {
			return err
		}
		state.Theme.Accent = a
	}
	if themeOpts.background != "" {
		b, err := theme.ParseBackground(themeOpts.background)
		if err != nil {
			return err
		}
		state.Theme.Background = b
	}

	if err := stateStore.Save(state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	logger.Debug("theme changed", "accent", state.Theme.Accent, "background", state.Theme.Background)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s on %s\n", state.Theme.Accent, state.Theme.Background)
	return err
}

func runThemeList(cmd *cobra.Command, args []string) error {
	accents := make([]string, 0, len(theme.Accents()))
	for _, a := range theme.Accents() {
		accents = append(accents, string(a))
	}
	backgrounds := make([]string, 0, len(theme.Backgrounds()))
	for _, b := range theme.Backgrounds() {
		backgrounds = append(backgrounds, string(b))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "accents:     %s\n", strings.Join(accents, ", "))
	_, err := fmt.Fprintf(w, "backgrounds: %s\n", strings.Join(backgrounds, ", "))
	return err
}
