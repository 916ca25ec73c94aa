package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driving"
	"github.com/custodia-labs/tweetwatch/internal/logger"
	"github.com/custodia-labs/tweetwatch/internal/metrics"
)

// Ensure RuleReconciler implements the interface.
var _ driving.RuleService = (*RuleReconciler)(nil)

// StatusFunc receives human-readable progress lines meant for the user.
type StatusFunc func(msg string)

// RuleReconciler keeps a single filter rule in place on the stream.
// It only ever adds: rules left over from other terms are not removed.
type RuleReconciler struct {
	store     driven.RuleStore
	term      string
	hashtag   string
	predicate string
	status    StatusFunc
	metrics   *metrics.Collector
}

// NewRuleReconciler creates a reconciler for the given search term and hashtag.
// status and m may be nil.
func NewRuleReconciler(
	store driven.RuleStore,
	term, hashtag string,
	status StatusFunc,
	m *metrics.Collector,
) *RuleReconciler {
	if status == nil {
		status = func(msg string) { logger.Info("%s", msg) }
	}
	return &RuleReconciler{
		store:     store,
		term:      term,
		hashtag:   hashtag,
		predicate: domain.FilterPredicate(term, hashtag),
		status:    status,
		metrics:   m,
	}
}

// Predicate returns the rule value this reconciler maintains.
func (r *RuleReconciler) Predicate() string {
	return r.predicate
}

// Rules lists the rules currently attached to the stream.
func (r *RuleReconciler) Rules(ctx context.Context) ([]domain.Rule, error) {
	rules, err := r.store.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list rules: %w", domain.ErrReconciliation, err)
	}
	return rules, nil
}

// Reconcile reads the current rules and adds the desired one if it is absent.
// A failed read is fatal: adding blindly could accumulate duplicate rules.
func (r *RuleReconciler) Reconcile(ctx context.Context) error {
	rules, err := r.Rules(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Stream has %d rule(s)", len(rules))

	if domain.ContainsValue(rules, r.predicate) {
		logger.Debug("Rule %q already present", r.predicate)
	} else {
		created, err := r.store.AddRules(ctx, []domain.Rule{{Value: r.predicate}})
		if err != nil {
			return fmt.Errorf("%w: add rule: %w", domain.ErrReconciliation, err)
		}
		r.metrics.RuleCreated()
		for _, rule := range created {
			logger.Debug("Created rule %s: %q", rule.ID, rule.Value)
		}
	}

	r.status(fmt.Sprintf(
		"Setting filter to search for original tweets containing %s or #%s with links",
		r.term, r.hashtag,
	))
	return nil
}
