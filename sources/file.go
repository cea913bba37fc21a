package sources

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tarungka/sift/internal/logger"
)

// maxLineSize bounds a single input line. NDJSON log records can be
// large but one line should never approach this.
const maxLineSize = 4 * 1024 * 1024

// FileSource streams the lines of a file from the beginning to EOF.
type FileSource struct {
	path string
	file *os.File

	mu  sync.Mutex
	err error
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Lines(ctx context.Context) (<-chan string, error) {
	log := logger.GetLogger("source")

	file, err := os.Open(f.path)
	if err != nil {
		log.Err(err).Str("path", f.path).Msg("Failed to open source file")
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	f.file = file

	out := make(chan string, 512)
	go func() {
		defer close(out)

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				log.Warn().Str("path", f.path).Msg("Context cancelled while reading source")
				return
			}
		}
		if err := scanner.Err(); err != nil {
			f.setErr(fmt.Errorf("failed to read source: %w", err))
		}
	}()

	return out, nil
}

func (f *FileSource) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FileSource) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *FileSource) Name() string { return f.path }

func (f *FileSource) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}
