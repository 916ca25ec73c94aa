package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/tweetwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tweetwatch/internal/connectors/google/sheets"
	"github.com/custodia-labs/tweetwatch/internal/connectors/twitter"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// Environment variable names.
const (
	EnvBearerToken     = "TW_BEARER_TOKEN"
	EnvDocumentID      = "TW_GOOGLE_DOC_ID"
	EnvTerm            = "TW_TERM"
	EnvHashtag         = "TW_HASHTAG"
	EnvCredentials     = "TW_GOOGLE_CREDENTIALS"
	EnvSink            = "TW_SINK"
	EnvSQLitePath      = "TW_SQLITE_PATH"
	EnvRulesURL        = "TW_RULES_URL"
	EnvStreamURL       = "TW_STREAM_URL"
	EnvRequestTimeout  = "TW_REQUEST_TIMEOUT"
	EnvWritesPerSecond = "TW_SHEETS_WRITES_PER_SECOND"
	EnvMetricsAddr     = "TW_METRICS_ADDR"
)

// fileKeys maps each environment variable to its settings-file key.
var fileKeys = map[string]string{
	EnvBearerToken:     "twitter.bearer_token",
	EnvDocumentID:      "sheets.document_id",
	EnvTerm:            "twitter.term",
	EnvHashtag:         "twitter.hashtag",
	EnvCredentials:     "sheets.credentials_file",
	EnvSink:            "sink.type",
	EnvSQLitePath:      "sqlite.path",
	EnvRulesURL:        "twitter.rules_url",
	EnvStreamURL:       "twitter.stream_url",
	EnvRequestTimeout:  "twitter.request_timeout",
	EnvWritesPerSecond: "sheets.writes_per_second",
	EnvMetricsAddr:     "metrics.addr",
}

// DefaultEnvFile is read when present and no env files are given.
const DefaultEnvFile = ".env"

// Options controls where Load looks for values.
type Options struct {
	// ConfigFile is the TOML settings file. Empty skips the file.
	ConfigFile string

	// EnvFiles are dotenv files to read. Nil reads DefaultEnvFile if it exists.
	// Files given explicitly must exist.
	EnvFiles []string

	// Overrides take precedence over every other source, keyed by
	// environment variable name. Empty values are ignored.
	Overrides map[string]string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load resolves the configuration. It fails only when a source cannot be
// read or a value cannot be parsed; missing required values are reported
// by Config.Validate.
func Load(opts Options) (Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	settings, err := file.Load(opts.ConfigFile)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	checkSettings(settings)

	dotenv, err := readEnvFiles(opts.EnvFiles)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}

	get := func(key string) string {
		if v := strings.TrimSpace(opts.Overrides[key]); v != "" {
			return v
		}
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v := strings.TrimSpace(dotenv[key]); v != "" {
			return v
		}
		if v, ok := settings.GetString(fileKeys[key]); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}

	cfg := Config{
		BearerToken:     get(EnvBearerToken),
		SpreadsheetID:   get(EnvDocumentID),
		Term:            get(EnvTerm),
		Hashtag:         strings.TrimPrefix(get(EnvHashtag), "#"),
		CredentialsFile: orDefault(get(EnvCredentials), sheets.DefaultCredentialsFile),
		Sink:            SinkType(strings.ToLower(orDefault(get(EnvSink), string(SinkSheets)))),
		SQLitePath:      get(EnvSQLitePath),
		RulesURL:        orDefault(get(EnvRulesURL), twitter.DefaultRulesURL),
		StreamURL:       orDefault(get(EnvStreamURL), twitter.DefaultStreamURL),
		RequestTimeout:  twitter.DefaultTimeout,
		MetricsAddr:     get(EnvMetricsAddr),
	}

	var parseErrs []error
	if v := get(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			parseErrs = append(parseErrs, fmt.Errorf("%s: invalid duration %q", EnvRequestTimeout, v))
		} else {
			cfg.RequestTimeout = d
		}
	}
	if v := get(EnvWritesPerSecond); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: invalid number %q", EnvWritesPerSecond, v))
		} else {
			cfg.SheetsWritesPerSecond = f
		}
	}
	if len(parseErrs) > 0 {
		return Config{}, fmt.Errorf("%w: %w", domain.ErrConfiguration, errors.Join(parseErrs...))
	}

	return cfg, nil
}

// checkSettings warns about keys in the settings file that nothing reads.
func checkSettings(settings *file.Settings) {
	keys := settings.Keys()
	if len(keys) == 0 {
		return
	}
	logger.Debug("Loaded %d setting(s) from %s", len(keys), settings.Path())

	known := make(map[string]bool, len(fileKeys))
	for _, k := range fileKeys {
		known[k] = true
	}
	for _, k := range keys {
		if !known[k] {
			logger.Warn("Ignoring unknown setting %q in %s", k, settings.Path())
		}
	}
}

// readEnvFiles reads dotenv files without touching the process environment.
// Later files win.
func readEnvFiles(files []string) (map[string]string, error) {
	if files == nil {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			logger.Debug("No %s file; relying on process environment", DefaultEnvFile)
			return map[string]string{}, nil
		}
		files = []string{DefaultEnvFile}
	}

	merged := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range values {
			merged[k] = v
		}
		logger.Debug("Loaded env file %s", f)
	}
	return merged, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
