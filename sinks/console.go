package sinks

import (
	"fmt"
	"io"

	"github.com/tarungka/sift/internal/models"
)

// NewConsole returns a sink that prints the projected values
// space-separated, one record per line, for human consumption.
func NewConsole(w io.Writer) RowSink {
	return func(rec models.Record, fields []models.Field) error {
		args := make([]any, len(fields))
		for i, f := range fields {
			v := f.Get(rec)
			if v == nil {
				v = "-"
			}
			args[i] = v
		}
		if _, err := fmt.Fprintln(w, args...); err != nil {
			return fmt.Errorf("console sink write: %w", err)
		}
		return nil
	}
}
