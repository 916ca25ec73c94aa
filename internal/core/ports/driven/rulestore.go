package driven

import (
	"context"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// RuleStore reads and creates filter rules on the streaming service.
type RuleStore interface {
	// ListRules returns every rule currently attached to the stream.
	ListRules(ctx context.Context) ([]domain.Rule, error)

	// AddRules creates the given rules and returns them with server IDs.
	AddRules(ctx context.Context, rules []domain.Rule) ([]domain.Rule, error)
}
