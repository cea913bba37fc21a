package sinks

import (
	"fmt"
	"io"
	"strings"

	"github.com/tarungka/sift/internal/models"
)

// NewDelimited returns the default comma-separated sink. Values
// containing a comma or newline are wrapped in double quotes with
// internal quotes backslash-escaped. This escaping predates the sink
// selection layer and is NOT standard CSV; a compliant CSV parser is
// not guaranteed to re-ingest it. Kept for output compatibility.
func NewDelimited(w io.Writer) RowSink {
	return func(rec models.Record, fields []models.Field) error {
		values := make([]string, len(fields))
		for i, f := range fields {
			values[i] = escapeField(f.Get(rec))
		}
		if _, err := fmt.Fprintln(w, strings.Join(values, ",")); err != nil {
			return fmt.Errorf("delimited sink write: %w", err)
		}
		return nil
	}
}

func escapeField(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, ",\n") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
