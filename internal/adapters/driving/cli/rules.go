package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tweetwatch/internal/config"
	"github.com/custodia-labs/tweetwatch/internal/connectors/twitter"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/services"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect filtered-stream rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules attached to the stream",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesPredicateCmd = &cobra.Command{
	Use:   "predicate",
	Short: "Print the rule value for the configured term and hashtag",
	Args:  cobra.NoArgs,
	RunE:  runRulesPredicate,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesPredicateCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.BearerToken == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrConfiguration, config.EnvBearerToken)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc := services.NewRuleReconciler(twitter.NewClient(ctx, cfg.Twitter()), cfg.Term, cfg.Hashtag, nil, nil)
	rules, err := svc.Rules(ctx)
	if err != nil {
		return err
	}

	if len(rules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rules.")
		return nil
	}

	predicate := ""
	if cfg.Term != "" && cfg.Hashtag != "" {
		predicate = svc.Predicate()
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%d rule(s)\n", len(rules))
	for _, r := range rules {
		marker := " "
		if r.Value == predicate {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\n", marker, r.ID, r.Value)
	}
	return w.Flush()
}

func runRulesPredicate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Term == "" || cfg.Hashtag == "" {
		return fmt.Errorf("%w: %s and %s are required",
			domain.ErrConfiguration, config.EnvTerm, config.EnvHashtag)
	}
	fmt.Fprintln(cmd.OutOrStdout(), domain.FilterPredicate(cfg.Term, cfg.Hashtag))
	return nil
}
