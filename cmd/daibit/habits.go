package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/daibit/internal/adapter/output"
	"github.com/jmylchreest/daibit/internal/core"
	"github.com/jmylchreest/daibit/internal/dates"
	"github.com/jmylchreest/daibit/internal/model"
)

var habitsOpts struct {
	// list
	format      string
	sortBy      string
	sortOrder   string
	template    string
	description bool

	// add
	emoji  string
	target int
	desc   string

	// log
	delta int
	date  string
}

var habitsCmd = &cobra.Command{
	Use:     "habits",
	Aliases: []string{"habit", "h"},
	Short:   "List and modify habits",
}

var habitsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with today's progress",
	Long: `List habits with today's count, current streak and last logged day.

Examples:
  # Plain listing
  daibit habits list

  # Longest current streak first, as JSON
  daibit habits list --sort streak --order desc --format json

  # Custom template
  daibit habits list --template '{{.Summary.Name}}: {{percent .Summary.Progress}}'`,
	Args: cobra.NoArgs,
	RunE: runHabitsList,
}

var habitsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a habit",
	Long: `Add a habit with a generated ID.

Examples:
  daibit habits add Stretch --emoji 🧘 --target 2 --description "Stretch twice a day"`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitsAdd,
}

var habitsLogCmd = &cobra.Command{
	Use:   "log <id|index|name>",
	Short: "Record progress for a habit",
	Long: `Add to a habit's count for a day (today by default).

The habit can be given by ID, 1-based index or name. Counts never go
below zero.

Examples:
  # Log one workout today
  daibit habits log workout

  # Undo one glass of water
  daibit habits log 4 --delta -1

  # Backfill yesterday
  daibit habits log h3 --date 2024-03-09`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitsLog,
}

var habitsRemoveCmd = &cobra.Command{
	Use:     "remove <id|index|name>",
	Aliases: []string{"rm"},
	Short:   "Remove a habit and its history",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitsRemove,
}

func init() {
	rootCmd.AddCommand(habitsCmd)
	habitsCmd.AddCommand(habitsListCmd, habitsAddCmd, habitsLogCmd, habitsRemoveCmd)

	// List flags
	habitsListCmd.Flags().StringVarP(&habitsOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, ids; default from config)")
	habitsListCmd.Flags().StringVar(&habitsOpts.sortBy, "sort", "order",
		"Sort by field (order, name, target, streak)")
	habitsListCmd.Flags().StringVar(&habitsOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")
	habitsListCmd.Flags().StringVar(&habitsOpts.template, "template", "",
		"Custom Go template for plain output")
	habitsListCmd.Flags().BoolVar(&habitsOpts.description, "description", false,
		"Show descriptions in plain output")

	// Add flags
	habitsAddCmd.Flags().StringVar(&habitsOpts.emoji, "emoji", "",
		"Emoji shown next to the name")
	habitsAddCmd.Flags().IntVar(&habitsOpts.target, "target", 1,
		"Completions per day")
	habitsAddCmd.Flags().StringVar(&habitsOpts.desc, "description", "",
		"Optional description")

	// Log flags
	habitsLogCmd.Flags().IntVarP(&habitsOpts.delta, "delta", "d", 1,
		"Amount to add (negative to undo)")
	habitsLogCmd.Flags().StringVar(&habitsOpts.date, "date", "",
		"Day to log as YYYY-MM-DD (default: today)")
}

func runHabitsList(cmd *cobra.Command, args []string) error {
	format := habitsOpts.format
	if format == "" {
		format = cfg.Output.Format
	}
	formatType, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	if habitsOpts.template != "" {
		if err := output.ValidateTemplate(habitsOpts.template); err != nil {
			return err
		}
	}

	field, err := core.ParseSortField(habitsOpts.sortBy)
	if err != nil {
		return err
	}
	order, err := core.ParseSortOrder(habitsOpts.sortOrder)
	if err != nil {
		return err
	}

	today := dates.Today()
	habits := stateStore.LoadOrDefault(cfg.SeedState).State.Habits
	core.Sort(habits, core.SortOptions{Field: field, Order: order, Today: today})

	opts := output.DefaultFormatterOptions()
	opts.Template = habitsOpts.template
	opts.ShowDescription = habitsOpts.description

	return output.NewFormatter(formatType, opts).Format(cmd.OutOrStdout(), habits, today)
}

func runHabitsAdd(cmd *cobra.Command, args []string) error {
	h, err := model.NewHabit(args[0], habitsOpts.emoji, habitsOpts.target, habitsOpts.desc)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrInvalidHabit, err)
	}

	state, err := loadForUpdate()
	if err != nil {
		return err
	}
	state.Habits, err = core.AddHabit(state.Habits, *h)
	if err != nil {
		return err
	}
	if err := stateStore.Save(state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	logger.Debug("habit added", "id", h.ID, "name", h.Name)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", h.Label(), h.ID)
	return err
}

func runHabitsLog(cmd *cobra.Command, args []string) error {
	date := habitsOpts.date
	if date == "" {
		date = dates.Today()
	}

	state, err := loadForUpdate()
	if err != nil {
		return err
	}
	h, err := core.Lookup(state.Habits, args[0])
	if err != nil {
		return err
	}

	count, err := core.Log(h, date, habitsOpts.delta)
	if err != nil {
		return err
	}
	if err := stateStore.Save(state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	logger.Debug("habit logged", "id", h.ID, "date", date, "delta", habitsOpts.delta, "count", count)

	done := ""
	if core.Completed(h, date) {
		done = " ✓"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d/%d%s\n", date, h.Label(), count, h.TargetPerDay, done)
	return err
}

func runHabitsRemove(cmd *cobra.Command, args []string) error {
	state, err := loadForUpdate()
	if err != nil {
		return err
	}

	var removed model.Habit
	state.Habits, removed, err = core.RemoveHabit(state.Habits, args[0])
	if err != nil {
		return err
	}
	if err := stateStore.Save(state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", removed.Label(), removed.ID)
	return err
}
