package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/daibit/internal/model"
)

// IDsFormatter outputs just the habit IDs, one per line.
// Useful for piping to other commands (e.g., daibit habits log).
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes habit IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, habits []model.Habit, _ string) error {
	for _, h := range habits {
		if _, err := fmt.Fprintln(w, h.ID); err != nil {
			return err
		}
	}
	return nil
}
