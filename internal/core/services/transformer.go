package services

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// Transform converts one stream chunk into a tweet record.
// It never fails loudly: keep-alives, partial frames, invalid JSON and
// payloads without data or author all report false.
// A present but empty tweet id or username also reports false, so no row
// is written with a broken permalink.
func Transform(chunk domain.RawChunk) (domain.TweetRecord, bool) {
	payload, err := decodePayload(chunk)
	if err != nil {
		return domain.TweetRecord{}, false
	}

	handle := payload.Includes.Users[0].Username
	return domain.TweetRecord{
		URL:       domain.TweetURL(handle, payload.Data.ID),
		Handle:    handle,
		CreatedAt: payload.Data.CreatedAt,
		Text:      payload.Data.Text,
	}, true
}

// decodePayload parses a chunk and checks the fields a record needs.
// Every failure is reported as domain.ErrPayloadMalformed.
func decodePayload(chunk domain.RawChunk) (*domain.EventPayload, error) {
	if chunk.IsKeepAlive() {
		return nil, fmt.Errorf("%w: empty chunk", domain.ErrPayloadMalformed)
	}

	var payload domain.EventPayload
	if err := json.Unmarshal(chunk, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPayloadMalformed, err)
	}

	switch {
	case payload.Data == nil || payload.Data.ID == "":
		return nil, fmt.Errorf("%w: missing data", domain.ErrPayloadMalformed)
	case payload.Includes == nil || len(payload.Includes.Users) == 0:
		return nil, fmt.Errorf("%w: missing includes.users", domain.ErrPayloadMalformed)
	case payload.Includes.Users[0].Username == "":
		return nil, fmt.Errorf("%w: missing username", domain.ErrPayloadMalformed)
	}

	return &payload, nil
}
