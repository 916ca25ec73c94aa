package driving

import (
	"context"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// Pipeline runs rule reconciliation, sink connection and streaming in order.
type Pipeline interface {
	// Run blocks until a fatal error or until ctx is cancelled.
	Run(ctx context.Context) error
}

// RuleService exposes the filter rule to the CLI.
type RuleService interface {
	// Reconcile makes sure the desired rule exists on the service.
	Reconcile(ctx context.Context) error

	// Rules lists the rules currently on the service.
	Rules(ctx context.Context) ([]domain.Rule, error)

	// Predicate returns the desired rule value.
	Predicate() string
}
