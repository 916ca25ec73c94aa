// Package memory provides in-process implementations of driven ports.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// Ensure Sink implements the interfaces.
var (
	_ driven.Sink       = (*Sink)(nil)
	_ driven.SinkOpener = (*Sink)(nil)
)

// Sink is an in-memory implementation of driven.Sink, used for dry runs.
// Each appended row is logged at info level.
// It is its own opener: Open returns the same sink every time.
type Sink struct {
	mu      sync.RWMutex
	name    string
	rows    [][]string
	closed  bool
	openErr error
}

// NewSink creates an empty in-memory sink.
func NewSink(name string) *Sink {
	if name == "" {
		name = "memory"
	}
	return &Sink{name: name}
}

// FailOpen makes subsequent Open calls return err.
func (s *Sink) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// Open returns the sink itself.
func (s *Sink) Open(_ context.Context) (driven.Sink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.closed = false
	return s, nil
}

// Name returns the sink name.
func (s *Sink) Name() string {
	return s.name
}

// Append stores the record's row.
func (s *Sink) Append(_ context.Context, record domain.TweetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSinkAppend
	}
	row := record.Row()
	s.rows = append(s.rows, row)
	logger.Info("Row %d: %s", len(s.rows), strings.Join(row, " | "))
	return nil
}

// Rows returns a copy of every appended row in order.
func (s *Sink) Rows() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Closed reports whether Close has been called since the last Open.
func (s *Sink) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Close marks the sink closed. Further appends fail until reopened.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
