package pipeline

import "errors"

// Configuration errors, surfaced before a scan starts.
var (
	ErrMissingFilename  = errors.New("no filename or source configured")
	ErrInvalidFieldSpec = errors.New("field spec must be a string path, a models.Field or an accessor func")
	ErrInvalidFilter    = errors.New("filter must be a non-nil predicate")
	ErrInvalidMapper    = errors.New("mapper must be a non-nil func")
	ErrInvalidSink      = errors.New("output must be a sink name or a sinks.RowSink")
	ErrMissingBound     = errors.New("time bound filter needs at least one of from/until")
)

// Scan-time errors.
var (
	// ErrDecode wraps a malformed input line. By default it aborts the
	// scan; rows already emitted stand, there is no rollback.
	ErrDecode = errors.New("malformed input line")

	// ErrScanConsumed is returned by Scan on a pipeline that has
	// already scanned. One pipeline performs exactly one scan.
	ErrScanConsumed = errors.New("pipeline has already scanned")
)
