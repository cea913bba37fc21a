package sinks

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tarungka/sift/internal/models"
)

// NewRaw returns a sink that serializes the whole record, not just the
// projected fields, as one JSON object per line.
func NewRaw(w io.Writer) RowSink {
	enc := json.NewEncoder(w)
	return func(rec models.Record, _ []models.Field) error {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("raw sink write: %w", err)
		}
		return nil
	}
}
