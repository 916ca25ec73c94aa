package driven

import (
	"context"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// EventStream opens the persistent filtered stream.
type EventStream interface {
	// Open connects to the stream and returns its chunks.
	// The chunk channel is unbuffered: the next chunk is not read until
	// the previous one has been received. A connection or read failure,
	// including the server ending the body, is sent on the error channel,
	// after which both channels are closed. Cancelling ctx closes both
	// channels without an error.
	Open(ctx context.Context) (<-chan domain.RawChunk, <-chan error)
}
