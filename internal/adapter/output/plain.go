package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/daibit/internal/dates"
	"github.com/jmylchreest/daibit/internal/model"
)

// PlainFormatter formats habits as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// ValidateTemplate reports whether tmpl parses as a plain-format template.
func ValidateTemplate(tmpl string) error {
	if _, err := template.New("plain").Funcs(templateFuncs()).Parse(tmpl); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	return nil
}

// templateData provides data for custom templates.
type templateData struct {
	Index   int
	Summary Summary
	Last    string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"percent": func(p float64) string {
			return fmt.Sprintf("%.0f%%", p*100)
		},
		"bar": func(count, target int) string {
			return progressBar(count, target)
		},
	}
}

// Format writes habits as plain text.
func (f *PlainFormatter) Format(w io.Writer, habits []model.Habit, today string) error {
	for i, s := range Summarize(habits, today) {
		if err := f.formatHabit(w, i+1, s, today); err != nil {
			return err
		}
	}
	return nil
}

// formatHabit formats a single habit line.
func (f *PlainFormatter) formatHabit(w io.Writer, index int, s Summary, today string) error {
	last := lastLogged(s.LastLogged, today)

	if f.template != nil {
		data := templateData{Index: index, Summary: s, Last: last}
		if err := f.template.Execute(w, data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", index))
	}

	if s.Emoji != "" {
		sb.WriteString(s.Emoji + " ")
	}
	sb.WriteString(s.Name)
	sb.WriteString(fmt.Sprintf("  %s %d/%d", progressBar(s.Today, s.TargetPerDay), s.Today, s.TargetPerDay))
	sb.WriteString(fmt.Sprintf("  streak %d", s.CurrentStreak))
	sb.WriteString(fmt.Sprintf("  (last: %s)", last))
	sb.WriteString("\n")

	if f.opts.ShowDescription && s.Description != "" {
		sb.WriteString("    " + s.Description + "\n")
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

// progressBar renders one block per target unit, filled up to count.
// Counts beyond the target are shown as a trailing plus.
func progressBar(count, target int) string {
	if target <= 0 {
		return ""
	}
	filled := min(max(count, 0), target)
	bar := strings.Repeat("■", filled) + strings.Repeat("□", target-filled)
	if count > target {
		bar += "+"
	}
	return bar
}

// lastLogged renders a last-logged date relative to today.
func lastLogged(last, today string) string {
	if last == "" {
		return "never"
	}
	if last == today {
		return "today"
	}
	lt, err := dates.Parse(last)
	if err != nil {
		return last
	}
	tt, err := dates.Parse(today)
	if err != nil {
		return last
	}
	return humanize.RelTime(lt, tt, "ago", "from now")
}
