package sources

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tarungka/sift/internal/logger"
)

// TailSource streams a file from the beginning and then follows it,
// emitting lines as they are appended, until the context is cancelled.
// A line is emitted only once its terminating newline has been written;
// the partial tail is buffered across reads.
type TailSource struct {
	path    string
	file    *os.File
	watcher *fsnotify.Watcher
	partial string // buffered partial line

	mu  sync.Mutex
	err error
}

func NewTailSource(path string) *TailSource {
	return &TailSource{path: path}
}

func (t *TailSource) Lines(ctx context.Context) (<-chan string, error) {
	log := logger.GetLogger("source")

	file, err := os.Open(t.path)
	if err != nil {
		log.Err(err).Str("path", t.path).Msg("Failed to open source file")
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	t.file = file

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(t.path); err != nil {
		file.Close()
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", t.path, err)
	}
	t.watcher = watcher

	out := make(chan string, 512)
	go func() {
		defer close(out)
		defer watcher.Close()

		// Drain whatever is already in the file before following.
		if !t.drain(ctx, out) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Write != 0 {
					if !t.drain(ctx, out) {
						return
					}
				}
				if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					log.Warn().Str("path", t.path).Msg("Watched file removed or renamed, stopping tail")
					return
				}

			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Err(werr).Str("path", t.path).Msg("Watcher error")
			}
		}
	}()

	return out, nil
}

// drain reads from the current offset to EOF and emits every complete
// line. Returns false once the context is cancelled or the read fails.
func (t *TailSource) drain(ctx context.Context, out chan<- string) bool {
	buf := make([]byte, 64*1024)
	for {
		n, err := t.file.Read(buf)
		if n > 0 {
			t.partial += string(buf[:n])
			for {
				idx := strings.IndexByte(t.partial, '\n')
				if idx < 0 {
					break
				}
				line := strings.TrimSuffix(t.partial[:idx], "\r")
				t.partial = t.partial[idx+1:]
				select {
				case out <- line:
				case <-ctx.Done():
					return false
				}
			}
		}
		if err == io.EOF {
			return true
		}
		if err != nil {
			t.setErr(fmt.Errorf("failed to read source: %w", err))
			return false
		}
	}
}

func (t *TailSource) setErr(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

func (t *TailSource) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *TailSource) Name() string { return t.path }

func (t *TailSource) Close() error {
	if t.file == nil {
		return nil
	}
	return t.file.Close()
}
