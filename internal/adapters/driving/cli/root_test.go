package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "tweetwatch", rootCmd.Use)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{
		"verbose", "config", "env-file", "term", "hashtag",
		"doc-id", "sink", "sqlite-path", "metrics-addr",
	} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "rules")
	assert.Contains(t, names, "version")
}

func TestExecute_ReturnsZeroOnSuccess(t *testing.T) {
	_, _ = setupCLITest(t)
	rootCmd.SetArgs([]string{"version"})

	assert.Equal(t, 0, Execute())
}

func TestExecute_MissingConfigurationExitsOne(t *testing.T) {
	buf, base := setupCLITest(t)
	rootCmd.SetArgs(append([]string{"run"}, base...))

	code := Execute()

	assert.Equal(t, 1, code)
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"), "failure is reported on a single line")
	assert.True(t, strings.HasPrefix(out, "tweetwatch: "))
	assert.Contains(t, out, "Config mismatch. Expected TW_BEARER_TOKEN")
	assert.Contains(t, out, "TW_GOOGLE_DOC_ID")
	assert.Contains(t, out, "TW_TERM")
	assert.Contains(t, out, "TW_HASHTAG")
}

func TestExecute_BareRootRunsPipeline(t *testing.T) {
	buf, base := setupCLITest(t)
	rootCmd.SetArgs(base)

	assert.Equal(t, 1, Execute())
	assert.Contains(t, buf.String(), "Config mismatch")
}

func TestExecute_UnknownCommand(t *testing.T) {
	buf, _ := setupCLITest(t)
	rootCmd.SetArgs([]string{"nonsense"})

	assert.Equal(t, 1, Execute())
	assert.Contains(t, buf.String(), "unknown command")
}

func TestRootCmd_TimestampsWhenStderrIsNotATerminal(t *testing.T) {
	_, base := setupCLITest(t)
	stderrIsTerminal = func() bool { return false }
	logs := captureLogs(t)
	rootCmd.SetArgs(append([]string{"rules", "predicate", "--verbose", "--term", "a", "--hashtag", "b"}, base...))

	assert.Equal(t, 0, Execute())
	assert.Regexp(t, `(?m)^\d{4}-\d{2}-\d{2}T\S+ \[DEBUG\] Loaded env file`, logs.String())
}

func TestRootCmd_NoTimestampsOnTerminal(t *testing.T) {
	_, base := setupCLITest(t)
	logs := captureLogs(t)
	rootCmd.SetArgs(append([]string{"rules", "predicate", "--verbose", "--term", "a", "--hashtag", "b"}, base...))

	assert.Equal(t, 0, Execute())
	assert.Regexp(t, `(?m)^\[DEBUG\] Loaded env file`, logs.String())
}
