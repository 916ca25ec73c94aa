package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tweetwatch/internal/config"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

var allEnv = []string{
	config.EnvBearerToken,
	config.EnvDocumentID,
	config.EnvTerm,
	config.EnvHashtag,
	config.EnvCredentials,
	config.EnvSink,
	config.EnvSQLitePath,
	config.EnvRulesURL,
	config.EnvStreamURL,
	config.EnvRequestTimeout,
	config.EnvWritesPerSecond,
	config.EnvMetricsAddr,
}

// setupCLITest isolates the command from the caller's environment and
// captures both output streams. The returned args select an empty
// settings file and no env file.
func setupCLITest(t *testing.T) (*bytes.Buffer, []string) {
	t.Helper()

	for _, key := range allEnv {
		t.Setenv(key, "")
	}
	flags = rootFlags{}
	isTerm := stderrIsTerminal
	stderrIsTerminal = func() bool { return true }

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	logger.SetOutput(io.Discard)

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		logger.SetTimestamps(false)
		stderrIsTerminal = isTerm
		flags = rootFlags{}
	})

	dir := t.TempDir()
	envFile := filepath.Join(dir, "empty.env")
	require.NoError(t, os.WriteFile(envFile, nil, 0o600))
	return buf, []string{
		"--config", filepath.Join(dir, "absent.toml"),
		"--env-file", envFile,
	}
}

// captureLogs routes logger output into a buffer for the rest of the test.
func captureLogs(t *testing.T) *lockedBuffer {
	t.Helper()
	buf := &lockedBuffer{}
	logger.SetOutput(buf)
	return buf
}

// lockedBuffer is a bytes.Buffer safe for the stream goroutine to log into.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
