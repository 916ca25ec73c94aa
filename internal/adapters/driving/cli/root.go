// Package cli provides the Cobra command-line interface for tweetwatch.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tweetwatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tweetwatch/internal/config"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// rootFlags holds values bound to persistent flags.
type rootFlags struct {
	verbose     bool
	configFile  string
	envFiles    []string
	term        string
	hashtag     string
	documentID  string
	sink        string
	sqlitePath  string
	metricsAddr string
}

var flags rootFlags

// stderrIsTerminal is replaced in tests.
var stderrIsTerminal = func() bool { return isTerminal(os.Stderr) }

var rootCmd = &cobra.Command{
	Use:   "tweetwatch",
	Short: "Forward tweets matching a filter rule to a spreadsheet",
	Long: `tweetwatch keeps a filtered-stream rule for a company name and campaign
hashtag in place on the Twitter API, then appends every original tweet with
links that matches it to a Google Spreadsheet, one row per tweet.

Running without a subcommand is the same as "tweetwatch run".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flags.verbose)
		logger.SetTimestamps(!stderrIsTerminal())
	},
	RunE: runPipeline,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&flags.configFile, "config", "", "settings file (default ~/.tweetwatch/config.toml)")
	pf.StringSliceVar(&flags.envFiles, "env-file", nil, "dotenv file(s) to read (default .env if present)")
	pf.StringVar(&flags.term, "term", "", "company or product name to search for ("+config.EnvTerm+")")
	pf.StringVar(&flags.hashtag, "hashtag", "", "campaign hashtag ("+config.EnvHashtag+")")
	pf.StringVar(&flags.documentID, "doc-id", "", "Google Spreadsheet id ("+config.EnvDocumentID+")")
	pf.StringVar(&flags.sink, "sink", "", "row destination: sheets, sqlite or memory ("+config.EnvSink+")")
	pf.StringVar(&flags.sqlitePath, "sqlite-path", "", "archive file for the sqlite sink ("+config.EnvSQLitePath+")")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address ("+config.EnvMetricsAddr+")")
}

// Execute runs the root command and returns the process exit code.
// Any failure is reported as a single line on stderr.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		msg := strings.ReplaceAll(err.Error(), "\n", "; ")
		fmt.Fprintf(rootCmd.ErrOrStderr(), "tweetwatch: %s\n", msg)
		return 1
	}
	return 0
}

// loadConfig resolves the configuration from flags, environment and files.
func loadConfig() (config.Config, error) {
	path := flags.configFile
	if path == "" {
		if p, err := file.DefaultPath(); err == nil {
			path = p
		}
	}

	return config.Load(config.Options{
		ConfigFile: path,
		EnvFiles:   flags.envFiles,
		Overrides: map[string]string{
			config.EnvTerm:        flags.term,
			config.EnvHashtag:     flags.hashtag,
			config.EnvDocumentID:  flags.documentID,
			config.EnvSink:        flags.sink,
			config.EnvSQLitePath:  flags.sqlitePath,
			config.EnvMetricsAddr: flags.metricsAddr,
		},
	})
}
