// Package pipeline streams a newline-delimited JSON log through a
// filter → map → project → emit sequence, one line at a time, in input
// order, without ever holding the whole file.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tarungka/sift/internal/logger"
	"github.com/tarungka/sift/internal/models"
	"github.com/tarungka/sift/sinks"
	"github.com/tarungka/sift/sources"
)

// defaultFieldSpecs is installed when a scan starts with an empty
// projection.
var defaultFieldSpecs = []any{"timestamp", "level", "message"}

// Options configures a pipeline. It is read once by New; the pipeline
// owns its configuration exclusively after that.
type Options struct {
	// Filename is the input path. Required unless Source is set.
	Filename string
	// Source overrides Filename with an explicit line source (stdin,
	// a reader in tests).
	Source sources.LineSource
	// From/Until install an inclusive time-bound filter ahead of all
	// caller filters. Each is a time.Time or a parseable string.
	From, Until any
	// Fields seeds the projection; specs as accepted by CompileField.
	Fields []any
	// Output names a built-in sink or supplies a sinks.RowSink.
	// Defaults to the delimited sink on stdout.
	Output any
	// Quiet suppresses the starting notice and the summary. Data rows
	// are never suppressed.
	Quiet bool
	// SkipMalformed skips and counts undecodable lines instead of
	// aborting the scan on the first one.
	SkipMalformed bool
	// Follow tails Filename for appended lines instead of stopping at
	// EOF. Only meaningful with Filename.
	Follow bool
}

// Pipeline is a single-use scan over one input stream. Configuration
// calls chain and must all happen before Scan.
type Pipeline struct {
	key    uuid.UUID
	source sources.LineSource
	sink   sinks.RowSink

	fields  []models.Field
	filters []FilterFunc
	mappers []MapFunc

	quiet         bool
	skipMalformed bool

	// scan is one-shot
	consumed atomic.Bool

	lineCount   int
	outputCount int
	skipCount   int

	// first configuration error wins; Scan refuses to start on it
	err error

	log zerolog.Logger
}

// New creates a pipeline from options. Configuration problems in the
// options surface here; problems introduced by later builder calls are
// held and returned by Err and Scan.
func New(opts Options) (*Pipeline, error) {
	key, err := uuid.NewV7()
	if err != nil {
		// no scoped logger exists yet at this point
		logger.AdHocLogger.Err(err).Msg("error when keying the pipeline")
		return nil, fmt.Errorf("failed to key pipeline: %w", err)
	}

	p := &Pipeline{
		key:           key,
		quiet:         opts.Quiet,
		skipMalformed: opts.SkipMalformed,
		log:           logger.GetLogger("pipeline").With().Str("scan", key.String()).Logger(),
	}

	switch {
	case opts.Source != nil:
		p.source = opts.Source
	case opts.Filename == "":
		return nil, ErrMissingFilename
	case opts.Follow:
		p.source = sources.NewTailSource(opts.Filename)
	default:
		p.source = sources.NewFileSource(opts.Filename)
	}

	switch out := opts.Output.(type) {
	case nil:
		p.sink = sinks.ForName("")
	case string:
		p.sink = sinks.ForName(out)
	case sinks.RowSink:
		p.sink = out
	case func(models.Record, []models.Field) error:
		p.sink = out
	default:
		return nil, fmt.Errorf("%w, got %T", ErrInvalidSink, opts.Output)
	}

	if opts.From != nil || opts.Until != nil {
		bound, err := TimeBound(opts.From, opts.Until)
		if err != nil {
			return nil, err
		}
		p.filters = append(p.filters, bound)
	}

	if len(opts.Fields) > 0 {
		p.AddFields(opts.Fields...)
		if p.err != nil {
			return nil, p.err
		}
	}

	return p, nil
}

// AddFields compiles the specs and appends them to the projection.
// Cumulative across calls; never replaces earlier fields.
func (p *Pipeline) AddFields(specs ...any) *Pipeline {
	for _, spec := range specs {
		field, err := CompileField(spec)
		if err != nil {
			p.fail(err)
			return p
		}
		p.fields = append(p.fields, field)
	}
	return p
}

// Filter appends a predicate to the chain. Predicates run in
// registration order and short-circuit on the first rejection.
func (p *Pipeline) Filter(fn FilterFunc) *Pipeline {
	if fn == nil {
		p.fail(ErrInvalidFilter)
		return p
	}
	p.filters = append(p.filters, fn)
	return p
}

// Map appends a transform applied to records that passed every filter.
func (p *Pipeline) Map(fn MapFunc) *Pipeline {
	if fn == nil {
		p.fail(ErrInvalidMapper)
		return p
	}
	p.mappers = append(p.mappers, fn)
	return p
}

// Err reports the first configuration error recorded by a builder
// call, if any.
func (p *Pipeline) Err() error {
	return p.err
}

func (p *Pipeline) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Counts reports lines attempted, records emitted and malformed lines
// skipped. Valid after Scan returns.
func (p *Pipeline) Counts() (lines, output, skipped int) {
	return p.lineCount, p.outputCount, p.skipCount
}

// Scan drives the stream to exhaustion: decode each line, tag it with
// its line number, run the filter chain, the mapper chain and the
// projection, and hand the row to the sink. The header row goes out
// exactly once before any data row, even on empty input. A pipeline
// scans once; a second call returns ErrScanConsumed.
func (p *Pipeline) Scan(ctx context.Context) error {
	if p.err != nil {
		return p.err
	}
	if !p.consumed.CompareAndSwap(false, true) {
		return ErrScanConsumed
	}

	if len(p.fields) == 0 {
		p.AddFields(defaultFieldSpecs...)
	}

	// The header travels the same path as data: a synthetic record
	// whose projected values are the display keys, paired with
	// direct-lookup accessors so the sink needs no special case.
	headerRec, headerFields := headerRow(p.fields)
	if err := p.sink(headerRec, headerFields); err != nil {
		return err
	}

	if !p.quiet {
		p.log.Info().Str("source", p.source.Name()).Msg("Starting scan")
	}

	// An aborted scan must wind down the source's reader goroutine,
	// not just the happy path.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, err := p.source.Lines(ctx)
	if err != nil {
		return err
	}
	defer p.source.Close()

	for line := range lines {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.lineCount++

		var rec models.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			if p.skipMalformed {
				p.skipCount++
				p.log.Debug().Int("line", p.lineCount).Msg("Skipping malformed line")
				continue
			}
			return fmt.Errorf("%w %d: %v", ErrDecode, p.lineCount, err)
		}
		rec[models.LineKey] = p.lineCount

		pass := true
		for _, filter := range p.filters {
			ok, err := filter(rec)
			if err != nil {
				return fmt.Errorf("filter failed at line %d: %w", p.lineCount, err)
			}
			if !ok {
				pass = false
				break
			}
		}
		if !pass {
			continue
		}

		rec = applyMappers(p.mappers, rec, p.outputCount)

		if err := p.sink(rec, p.fields); err != nil {
			return err
		}
		p.outputCount++
	}

	if err := p.source.Err(); err != nil {
		return err
	}

	if !p.quiet {
		p.log.Info().
			Int("lines", p.lineCount).
			Int("output", p.outputCount).
			Int("skipped", p.skipCount).
			Msgf("Scanned %d lines, output %d", p.lineCount, p.outputCount)
	}
	return nil
}

func headerRow(fields []models.Field) (models.Record, []models.Field) {
	rec := make(models.Record, len(fields))
	headerFields := make([]models.Field, len(fields))
	for i, f := range fields {
		key := f.Key
		rec[key] = key
		headerFields[i] = models.Field{Key: key, Get: func(r models.Record) any { return r[key] }}
	}
	return rec, headerFields
}
