package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/logger"
	"github.com/custodia-labs/tweetwatch/internal/metrics"
)

// Ingestor consumes the filtered stream and appends each tweet to a sink.
type Ingestor struct {
	stream  driven.EventStream
	metrics *metrics.Collector
}

// NewIngestor creates an ingestor reading from stream. m may be nil.
func NewIngestor(stream driven.EventStream, m *metrics.Collector) *Ingestor {
	return &Ingestor{
		stream:  stream,
		metrics: m,
	}
}

// Run opens the stream and processes chunks until a fatal error.
// Each chunk is transformed and appended before the next is received.
// Transport failures, including the server closing the stream, return an
// error wrapping domain.ErrTransport; a failed append returns one wrapping
// domain.ErrSinkAppend. Run returns ctx.Err() when ctx is cancelled.
func (i *Ingestor) Run(ctx context.Context, sink driven.Sink) error {
	chunks, errs := i.stream.Open(ctx)

	i.metrics.SetStreaming(true)
	defer i.metrics.SetStreaming(false)

	logger.Info("Streaming tweets into %s", sink.Name())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errs:
			if !ok {
				// The chunk channel is closed right after; finish there.
				errs = nil
				continue
			}
			return fmt.Errorf("%w: %w", domain.ErrTransport, err)

		case chunk, ok := <-chunks:
			if !ok {
				return i.closed(ctx, errs)
			}
			if err := i.handle(ctx, sink, chunk); err != nil {
				return err
			}
		}
	}
}

func (i *Ingestor) handle(ctx context.Context, sink driven.Sink, chunk domain.RawChunk) error {
	i.metrics.ChunkReceived()

	record, ok := Transform(chunk)
	if !ok {
		i.metrics.ChunkDropped()
		return nil
	}

	if err := sink.Append(ctx, record); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrSinkAppend, record.URL, err)
	}
	i.metrics.RecordAppended()
	logger.Debug("Appended %s", record.URL)
	return nil
}

// closed reports why the chunk channel was closed.
func (i *Ingestor) closed(ctx context.Context, errs <-chan error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if errs != nil {
		if err, ok := <-errs; ok && err != nil {
			return fmt.Errorf("%w: %w", domain.ErrTransport, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrTransport, domain.ErrStreamClosed)
}
