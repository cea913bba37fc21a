package pipeline

import "github.com/tarungka/sift/internal/models"

// MapFunc transforms a record that has already passed the filter chain.
// The second argument is how many records were emitted before this one
// (0-based) — not the source line number. A mapper may return a
// completely different record; the pipeline does not validate shape.
type MapFunc func(rec models.Record, emitted int) models.Record

// applyMappers runs the chain in registration order, each mapper fed
// the previous one's output.
func applyMappers(mappers []MapFunc, rec models.Record, emitted int) models.Record {
	for _, m := range mappers {
		rec = m(rec, emitted)
	}
	return rec
}
