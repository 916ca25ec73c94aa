package twitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DuplicateRuleTitle is the error title returned when a rule value already exists.
const DuplicateRuleTitle = "DuplicateRule"

// APIError represents a non-2xx response from the Twitter API.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	URL        string
}

func (e *APIError) Error() string {
	msg := e.Title
	if e.Detail != "" {
		if msg != "" {
			msg += ": "
		}
		msg += e.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("twitter: API error %d: %s (URL: %s)", e.StatusCode, msg, e.URL)
}

// RuleError reports a rule the API refused to create.
type RuleError struct {
	Value string
	Title string
	Type  string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("twitter: rule %q not created: %s", e.Value, e.Title)
}

// IsUnauthorized checks if the error indicates an invalid bearer token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates the app lacks stream access.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsTooManyConnections checks if the error indicates another stream
// connection is already open for this app.
func IsTooManyConnections(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// problem is the error body shape used by the v2 API.
type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Type   string `json:"type"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// newAPIError builds an APIError from a failed response, reading at most
// a few KB of the body for the problem description.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.Redacted(),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var p problem
	if err := json.Unmarshal(body, &p); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Title = p.Title
	apiErr.Detail = p.Detail
	if apiErr.Detail == "" && len(p.Errors) > 0 {
		msgs := make([]string, 0, len(p.Errors))
		for _, e := range p.Errors {
			msgs = append(msgs, e.Message)
		}
		apiErr.Detail = strings.Join(msgs, "; ")
	}
	return apiErr
}
