package sources

import (
	"context"
	"fmt"
	"os"
)

// SourceConfig selects and parameterizes a line source.
type SourceConfig struct {
	Type string `koanf:"type"`
	Path string `koanf:"path"`
}

// LineSource yields the raw text lines of one input stream. Lines is
// lazy: nothing is read until it is called, and the returned channel is
// closed when the stream is exhausted or the context is cancelled. A
// source reads its input once; build a new one to restart.
type LineSource interface {
	// Lines starts the read and returns the line channel.
	Lines(ctx context.Context) (<-chan string, error)
	// Err reports a terminal read error, if any, once the line channel
	// has closed.
	Err() error
	Name() string
	Close() error
}

// ForConfig creates and allocates the source for a config.
func ForConfig(config SourceConfig) (LineSource, error) {
	switch config.Type {
	case "file", "":
		return NewFileSource(config.Path), nil
	case "tail":
		return NewTailSource(config.Path), nil
	case "stdin":
		return NewReaderSource("stdin", os.Stdin), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", config.Type)
	}
}
