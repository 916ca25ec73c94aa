// Package twitter implements the Twitter API v2 filtered stream ports.
//
// Client implements driven.RuleStore against the stream rules endpoint and
// Stream implements driven.EventStream against the stream endpoint. Both
// authenticate with an app-only bearer token through golang.org/x/oauth2.
//
// # Timeouts
//
// Rule requests are short-lived and bounded by Config.Timeout (20s by
// default). The stream connection has no client timeout: it stays open
// until the server or the caller closes it.
//
// # Framing
//
// The stream body is a sequence of JSON objects separated by "\r\n".
// Empty lines are keep-alives and are delivered like any other chunk.
package twitter
