package cli

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/tweetwatch/internal/config"
	"github.com/custodia-labs/tweetwatch/internal/connectors/google"
	"github.com/custodia-labs/tweetwatch/internal/connectors/twitter"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

// withHint appends a remedy to errors whose cause the user can fix.
func withHint(err error) error {
	if h := hint(err); h != "" {
		return fmt.Errorf("%w (hint: %s)", err, h)
	}
	return err
}

func hint(err error) string {
	switch {
	case err == nil:
		return ""
	case twitter.IsUnauthorized(err):
		return "check " + config.EnvBearerToken
	case twitter.IsForbidden(err):
		return "the app needs filtered stream access in the Twitter developer portal"
	case errors.Is(err, domain.ErrTransport) && twitter.IsTooManyConnections(err):
		return "another stream connection is open for this app; stop it before starting a new one"
	case google.IsUnauthorized(err):
		return "check the service-account key in " + config.EnvCredentials
	case google.IsForbidden(err):
		return "share the spreadsheet with the service account's email address"
	case google.IsNotFound(err):
		return "check " + config.EnvDocumentID
	case google.IsRateLimited(err):
		return "lower " + config.EnvWritesPerSecond
	default:
		return ""
	}
}
