package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tweetwatch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tweetwatch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tweetwatch/internal/config"
	"github.com/custodia-labs/tweetwatch/internal/connectors/google/sheets"
	"github.com/custodia-labs/tweetwatch/internal/connectors/twitter"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/core/services"
	"github.com/custodia-labs/tweetwatch/internal/logger"
	"github.com/custodia-labs/tweetwatch/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile the filter rule and stream tweets into the sink",
	Long: `Ensures the filter rule for the configured term and hashtag exists, opens
the sink, then forwards every matching tweet as a row until the stream fails
or the process is interrupted.

Exits 1 on any configuration, rule, sink or stream failure, and 0 when
stopped by SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// notifyContext is replaced in tests.
var notifyContext = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := notifyContext(parent)
	defer stop()

	collector := metrics.NewCollector()

	out := cmd.OutOrStdout()
	status := func(msg string) { printStyled(out, statusStyle, msg) }

	reconciler := services.NewRuleReconciler(
		twitter.NewClient(ctx, cfg.Twitter()), cfg.Term, cfg.Hashtag, status, collector,
	)
	ingestor := services.NewIngestor(twitter.NewStream(ctx, cfg.Twitter()), collector)

	orch := services.NewOrchestrator(cfg, reconciler, sinkOpener(cfg), ingestor)
	orch.OnTransition(func(from, to services.State) {
		// Only a validated configuration gets a listener.
		if from == services.StateConfiguring && to == services.StateReconciling {
			if err := collector.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Warn("%v", err)
			}
		}
	})

	err = orch.Run(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		printStyled(out, mutedStyle, "Stopped.")
		return nil
	}
	return withHint(err)
}

// sinkOpener picks the sink adapter named by the configuration.
func sinkOpener(cfg config.Config) driven.SinkOpener {
	switch cfg.Sink {
	case config.SinkSQLite:
		return sqlite.NewOpener(cfg.SQLitePath)
	case config.SinkSheets:
		return sheets.NewOpener(cfg.Sheets())
	case config.SinkMemory:
		return memory.NewSink("memory")
	default:
		return unknownSink(cfg.Sink)
	}
}

// unknownSink fails to open; validation normally rejects the value first.
type unknownSink config.SinkType

func (u unknownSink) Open(context.Context) (driven.Sink, error) {
	return nil, fmt.Errorf("unknown sink %q", string(u))
}
