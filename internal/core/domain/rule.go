package domain

import "fmt"

// Rule is a filter rule stored on the streaming service.
// Rules are identified by Value; ID is assigned by the server.
type Rule struct {
	// ID is the server-assigned identifier. Empty on create.
	ID string `json:"id,omitempty"`

	// Value is the filter predicate expression.
	Value string `json:"value"`

	// Tag is an optional label attached to the rule.
	Tag string `json:"tag,omitempty"`
}

// FilterPredicate builds the rule value for a search term and campaign hashtag.
// The result only matches original tweets carrying links.
func FilterPredicate(term, hashtag string) string {
	return fmt.Sprintf("(%s OR #%s) has:links -is:retweet", term, hashtag)
}

// ContainsValue reports whether any rule has exactly the given value.
func ContainsValue(rules []Rule, value string) bool {
	for _, r := range rules {
		if r.Value == value {
			return true
		}
	}
	return false
}
