package pipeline

import (
	"fmt"
	"time"

	"github.com/tarungka/sift/internal/models"
)

// FilterFunc decides whether a record is retained. Returning an error
// aborts the scan; a false verdict just drops the record.
type FilterFunc func(models.Record) (bool, error)

// TimeBound builds a predicate keeping records whose timestamp field
// falls inside [from, until], both ends inclusive. Each bound is a
// time.Time or a parseable string; a nil bound is open. At least one
// bound is required. The record's timestamp is parsed lazily per
// record, and a record that carries an unparseable timestamp fails the
// scan rather than silently failing the filter.
func TimeBound(from, until any) (FilterFunc, error) {
	if from == nil && until == nil {
		return nil, ErrMissingBound
	}

	var fromTime, untilTime time.Time
	var err error
	if from != nil {
		if fromTime, err = models.CoerceTime(from); err != nil {
			return nil, fmt.Errorf("bad from bound: %w", err)
		}
	}
	if until != nil {
		if untilTime, err = models.CoerceTime(until); err != nil {
			return nil, fmt.Errorf("bad until bound: %w", err)
		}
	}

	return func(r models.Record) (bool, error) {
		ts, err := models.CoerceTime(r["timestamp"])
		if err != nil {
			return false, fmt.Errorf("record at line %d: %w", r.Line(), err)
		}
		if from != nil && ts.Before(fromTime) {
			return false, nil
		}
		if until != nil && ts.After(untilTime) {
			return false, nil
		}
		return true, nil
	}, nil
}
