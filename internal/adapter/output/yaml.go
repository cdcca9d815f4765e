package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/daibit/internal/model"
)

// YAMLFormatter formats habit summaries as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes habit summaries as a YAML sequence.
func (f *YAMLFormatter) Format(w io.Writer, habits []model.Habit, today string) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Summarize(habits, today)); err != nil {
		return err
	}
	return encoder.Close()
}
