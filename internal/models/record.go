package models

import (
	"fmt"
	"time"
)

// LineKey is the synthetic field holding the 1-based source line number.
// It is set by the scan driver on every decoded record, whether or not
// the record survives the filter chain.
const LineKey = "_line"

// Record is one decoded JSON log entry. It is dynamically shaped; the
// pipeline owns it for the duration of one line and does not retain it
// after emission.
type Record map[string]any

// GetFunc extracts one value (possibly nested) from a record.
type GetFunc func(Record) any

// Field pairs an accessor with the display key used for the header row
// and diagnostics.
type Field struct {
	Key string
	Get GetFunc
}

// Line returns the source line number, or 0 if the record was never
// tagged.
func (r Record) Line() int {
	switch n := r[LineKey].(type) {
	case int:
		return n
	case float64:
		// round-tripped through JSON
		return int(n)
	}
	return 0
}

// timeLayouts are tried in order when coercing string timestamps.
// Log sources in the wild drop the zone or the seconds, so the strict
// RFC3339 form alone is not enough.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// CoerceTime accepts an already-parsed time.Time or a string in one of
// the supported layouts.
func CoerceTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", t)
	}
	return time.Time{}, fmt.Errorf("timestamp is %T, want time or string", v)
}
