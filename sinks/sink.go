// Package sinks holds the output formatters a scan can emit rows to.
// A sink is a plain function: the projection is passed explicitly on
// every call, including the header call, so sinks carry no state about
// the pipeline that owns them.
package sinks

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tarungka/sift/internal/models"
)

// RowSink renders one record. It is invoked once per surviving record
// and once, before the first data row, with a synthetic header record
// whose projected values are the display keys.
type RowSink func(rec models.Record, fields []models.Field) error

// Built-in sink names.
const (
	Delimited = "delimited"
	Console   = "console"
	Raw       = "raw"
)

// ForName creates and allocates the sink for a name, bound to stdout.
// An empty or unrecognized name falls back to the delimited sink.
func ForName(name string) RowSink {
	switch name {
	case Console:
		return NewConsole(consoleWriter())
	case Raw:
		return NewRaw(os.Stdout)
	case Delimited:
		return NewDelimited(os.Stdout)
	default:
		return NewDelimited(os.Stdout)
	}
}

// consoleWriter returns an ANSI-capable stdout when attached to a
// terminal and plain stdout otherwise.
func consoleWriter() io.Writer {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}
