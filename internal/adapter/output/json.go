package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/daibit/internal/model"
)

// JSONFormatter formats habit summaries as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes habit summaries as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, habits []model.Habit, today string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(Summarize(habits, today))
}
