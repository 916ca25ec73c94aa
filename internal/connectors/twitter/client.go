package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RuleStore = (*Client)(nil)

// Client talks to the filtered stream rules endpoint.
type Client struct {
	http     *http.Client
	rulesURL string
}

// NewClient creates a rules client authenticated with cfg.BearerToken.
// An *http.Client stored in ctx under oauth2.HTTPClient is used as the base
// transport, which lets tests point the client at an httptest server.
func NewClient(ctx context.Context, cfg Config) *Client {
	return &Client{
		http:     newHTTPClient(ctx, cfg.BearerToken, cfg.timeout()),
		rulesURL: cfg.rulesURL(),
	}
}

// newHTTPClient returns an http.Client that adds the bearer token to every request.
// A zero timeout means none.
func newHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = timeout
	return hc
}

// rulesResponse is the body of GET and POST on the rules endpoint.
type rulesResponse struct {
	Data []domain.Rule `json:"data"`
	Meta struct {
		ResultCount int `json:"result_count"`
		Summary     struct {
			Created    int `json:"created"`
			NotCreated int `json:"not_created"`
			Valid      int `json:"valid"`
			Invalid    int `json:"invalid"`
		} `json:"summary"`
	} `json:"meta"`
	Errors []struct {
		Value string `json:"value"`
		ID    string `json:"id"`
		Title string `json:"title"`
		Type  string `json:"type"`
	} `json:"errors"`
}

// addRequest is the body of a rule create call.
type addRequest struct {
	Add []addRule `json:"add"`
}

type addRule struct {
	Value string `json:"value"`
	Tag   string `json:"tag,omitempty"`
}

// ListRules returns every rule attached to the stream.
// A response without a data field means no rules.
func (c *Client) ListRules(ctx context.Context) ([]domain.Rule, error) {
	var out rulesResponse
	if err := c.do(ctx, http.MethodGet, nil, &out); err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return out.Data, nil
}

// AddRules creates rules and returns those the server created.
// A rule rejected only because its value already exists is not an error;
// it is returned with the ID the server reported for the existing rule.
func (c *Client) AddRules(ctx context.Context, rules []domain.Rule) ([]domain.Rule, error) {
	req := addRequest{Add: make([]addRule, 0, len(rules))}
	for _, r := range rules {
		req.Add = append(req.Add, addRule{Value: r.Value, Tag: r.Tag})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal rules: %w", err)
	}

	var out rulesResponse
	if err := c.do(ctx, http.MethodPost, body, &out); err != nil {
		return nil, fmt.Errorf("add rules: %w", err)
	}

	created := out.Data
	for _, e := range out.Errors {
		if e.Title != DuplicateRuleTitle {
			return nil, &RuleError{Value: e.Value, Title: e.Title, Type: e.Type}
		}
		logger.Warn("rule %q already exists as %s", e.Value, e.ID)
		created = append(created, domain.Rule{ID: e.ID, Value: e.Value})
	}

	logger.Debug("Rules created=%d not_created=%d",
		out.Meta.Summary.Created, out.Meta.Summary.NotCreated)
	return created, nil
}

// do sends a request to the rules endpoint and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method string, body []byte, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.rulesURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
