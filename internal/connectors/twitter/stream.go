package twitter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// Ensure Stream implements the interface.
var _ driven.EventStream = (*Stream)(nil)

// Stream connects to the filtered stream endpoint.
type Stream struct {
	http *http.Client
	url  string
}

// NewStream creates a stream authenticated with cfg.BearerToken.
// The connection has no client timeout.
func NewStream(ctx context.Context, cfg Config) *Stream {
	return &Stream{
		http: newHTTPClient(ctx, cfg.BearerToken, 0),
		url:  cfg.streamURL(),
	}
}

// Open connects and starts delivering newline-delimited chunks.
// See driven.EventStream for the channel contract.
func (s *Stream) Open(ctx context.Context) (<-chan domain.RawChunk, <-chan error) {
	chunks := make(chan domain.RawChunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		if err := s.consume(ctx, chunks); err != nil && ctx.Err() == nil {
			errs <- err
		}
	}()

	return chunks, errs
}

// consume reads the body until it fails. It only returns nil on cancellation.
func (s *Stream) consume(ctx context.Context, chunks chan<- domain.RawChunk) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	logger.Debug("Connected to stream (%s)", resp.Status)

	reader := bufio.NewReader(resp.Body)
	for {
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			select {
			case <-ctx.Done():
				return nil
			case chunks <- domain.RawChunk(bytes.TrimRight(line, "\r\n")):
			}
		}

		if readErr != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(readErr, io.EOF) {
				return domain.ErrStreamClosed
			}
			return fmt.Errorf("read: %w", readErr)
		}
	}
}
