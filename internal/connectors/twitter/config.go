package twitter

import "time"

const (
	// DefaultStreamURL is the filtered stream endpoint.
	DefaultStreamURL = "https://api.twitter.com/2/tweets/search/stream"

	// DefaultRulesURL is the filtered stream rules endpoint.
	DefaultRulesURL = DefaultStreamURL + "/rules"

	// DefaultTimeout bounds rule list and create requests.
	DefaultTimeout = 20 * time.Second

	// StreamQuery requests the tweet and author fields a record needs.
	StreamQuery = "tweet.fields=created_at&expansions=author_id&user.fields=created_at"
)

// Config holds connection settings for the Twitter API.
type Config struct {
	// BearerToken is the app-only bearer token.
	BearerToken string

	// RulesURL overrides DefaultRulesURL.
	RulesURL string

	// StreamURL overrides DefaultStreamURL.
	StreamURL string

	// Timeout overrides DefaultTimeout for rule requests.
	Timeout time.Duration
}

func (c Config) rulesURL() string {
	if c.RulesURL != "" {
		return c.RulesURL
	}
	return DefaultRulesURL
}

func (c Config) streamURL() string {
	base := c.StreamURL
	if base == "" {
		base = DefaultStreamURL
	}
	return base + "?" + StreamQuery
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
