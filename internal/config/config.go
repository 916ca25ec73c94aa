// Package config builds the immutable tweetwatch configuration.
//
// Values are resolved once at startup, highest precedence first:
//
//  1. Command-line overrides
//  2. Process environment
//  3. .env files
//  4. The TOML settings file
//  5. Built-in defaults
//
// The resulting Config is passed by value to every component; nothing
// reads the environment after Load returns.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/tweetwatch/internal/connectors/google/sheets"
	"github.com/custodia-labs/tweetwatch/internal/connectors/twitter"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// SinkType selects where rows are written.
type SinkType string

const (
	// SinkSheets appends rows to the first worksheet of a Google Spreadsheet.
	SinkSheets SinkType = "sheets"

	// SinkSQLite appends rows to a local SQLite archive.
	SinkSQLite SinkType = "sqlite"

	// SinkMemory keeps rows in process and logs them; for dry runs.
	SinkMemory SinkType = "memory"
)

// Config is the complete runtime configuration.
type Config struct {
	// BearerToken authenticates against the Twitter API.
	BearerToken string

	// SpreadsheetID identifies the Google document rows go to.
	SpreadsheetID string

	// Term is the company or product name to search for.
	Term string

	// Hashtag is the campaign hashtag, without the leading '#'.
	Hashtag string

	// CredentialsFile is the Google service-account key file.
	CredentialsFile string

	// Sink selects the row destination.
	Sink SinkType

	// SQLitePath is the archive file used when Sink is SinkSQLite.
	SQLitePath string

	// RulesURL and StreamURL override the Twitter endpoints.
	RulesURL  string
	StreamURL string

	// RequestTimeout bounds rule list and create requests.
	RequestTimeout time.Duration

	// SheetsWritesPerSecond paces appends; negative disables pacing.
	SheetsWritesPerSecond float64

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string
}

// Twitter returns the Twitter client settings.
func (c Config) Twitter() twitter.Config {
	return twitter.Config{
		BearerToken: c.BearerToken,
		RulesURL:    c.RulesURL,
		StreamURL:   c.StreamURL,
		Timeout:     c.RequestTimeout,
	}
}

// Sheets returns the Google Sheets sink settings.
func (c Config) Sheets() sheets.Config {
	return sheets.Config{
		SpreadsheetID:   c.SpreadsheetID,
		CredentialsFile: c.CredentialsFile,
		WritesPerSecond: c.SheetsWritesPerSecond,
	}
}

// Predicate returns the filter rule value for the configured term and hashtag.
func (c Config) Predicate() string {
	return domain.FilterPredicate(c.Term, c.Hashtag)
}

// Validate reports every required value that is missing, in one error
// wrapping domain.ErrConfiguration.
func (c Config) Validate() error {
	var problems []string

	if c.BearerToken == "" {
		problems = append(problems, "Config mismatch. Expected "+EnvBearerToken+
			" environment variable to contain a Twitter API token. Found undefined")
	}
	if c.Sink == SinkSheets && c.SpreadsheetID == "" {
		problems = append(problems, "Config mismatch. Expecting "+EnvDocumentID+
			" environment variable to contain a Google Spreadsheet id. Found undefined")
	}
	if c.Term == "" {
		problems = append(problems, "Config mismatch. Expecting "+EnvTerm+
			" environment variable to contain name of company")
	}
	if c.Hashtag == "" {
		problems = append(problems, "Config mismatch. Expecting "+EnvHashtag+
			" environment variable to contain a campaign hashtag")
	}
	switch c.Sink {
	case SinkSheets, SinkSQLite, SinkMemory:
	default:
		problems = append(problems, fmt.Sprintf("Config mismatch. Unknown %s %q, expected %q, %q or %q",
			EnvSink, c.Sink, SinkSheets, SinkSQLite, SinkMemory))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrConfiguration, strings.Join(problems, "; "))
}
