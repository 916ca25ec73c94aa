// Package domain defines the core entities for tweetwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Rule: A server-side filter rule on the filtered stream
//   - RawChunk: One delimited fragment of the streaming response body
//   - EventPayload: The decoded form of a chunk carrying a tweet
//   - TweetRecord: The normalised tweet appended to a sink
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
