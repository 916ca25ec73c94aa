package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/tweetwatch/internal/config"
	"github.com/custodia-labs/tweetwatch/internal/connectors/twitter"
	"github.com/custodia-labs/tweetwatch/internal/core/domain"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unrelated", errors.New("boom"), ""},
		{"bearer token", &twitter.APIError{StatusCode: http.StatusUnauthorized}, config.EnvBearerToken},
		{"stream access", &twitter.APIError{StatusCode: http.StatusForbidden}, "developer portal"},
		{"second connection", fmt.Errorf("%w: %w", domain.ErrTransport,
			&twitter.APIError{StatusCode: http.StatusTooManyRequests}), "another stream connection"},
		{"rules rate limit", fmt.Errorf("%w: %w", domain.ErrReconciliation,
			&twitter.APIError{StatusCode: http.StatusTooManyRequests}), ""},
		{"service account key", &googleapi.Error{Code: http.StatusUnauthorized}, config.EnvCredentials},
		{"not shared", &googleapi.Error{Code: http.StatusForbidden}, "share the spreadsheet"},
		{"unknown document", &googleapi.Error{Code: http.StatusNotFound}, config.EnvDocumentID},
		{"write quota", &googleapi.Error{Code: http.StatusTooManyRequests}, config.EnvWritesPerSecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hint(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestWithHint_KeepsErrorChain(t *testing.T) {
	cause := &twitter.APIError{StatusCode: http.StatusTooManyRequests}
	err := withHint(fmt.Errorf("%w: %w", domain.ErrTransport, cause))

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "hint: another stream connection")
}

func TestWithHint_NoHint(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, withHint(err))
}
