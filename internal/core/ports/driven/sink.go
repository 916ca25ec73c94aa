package driven

import (
	"context"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// SinkOpener obtains a handle to the external document that receives rows.
type SinkOpener interface {
	// Open connects to the document, loads its metadata and selects the
	// worksheet that rows are appended to.
	Open(ctx context.Context) (Sink, error)
}

// Sink appends tweet rows in call order.
type Sink interface {
	// Name describes the selected destination, e.g. "Campaign / Sheet1".
	Name() string

	// Append writes one record as a new row.
	Append(ctx context.Context, record domain.TweetRecord) error

	// Close releases resources.
	Close() error
}
