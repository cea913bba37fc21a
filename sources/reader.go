package sources

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// ReaderSource streams lines from an arbitrary reader (stdin, a pipe,
// a buffer in tests).
type ReaderSource struct {
	name string
	r    io.Reader

	mu  sync.Mutex
	err error
}

func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

func (s *ReaderSource) Lines(ctx context.Context) (<-chan string, error) {
	out := make(chan string, 512)
	go func() {
		defer close(out)

		scanner := bufio.NewScanner(s.r)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.mu.Lock()
			s.err = fmt.Errorf("failed to read source: %w", err)
			s.mu.Unlock()
		}
	}()
	return out, nil
}

func (s *ReaderSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ReaderSource) Name() string { return s.name }

func (s *ReaderSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
