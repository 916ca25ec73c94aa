package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
)

// mockRuleStore implements driven.RuleStore for testing.
type mockRuleStore struct {
	mu       sync.Mutex
	rules    []domain.Rule
	listErr  error
	addErr   error
	listCall int
	added    [][]domain.Rule
}

func (m *mockRuleStore) ListRules(_ context.Context) ([]domain.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCall++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Rule(nil), m.rules...), nil
}

func (m *mockRuleStore) AddRules(_ context.Context, rules []domain.Rule) ([]domain.Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, rules)
	if m.addErr != nil {
		return nil, m.addErr
	}
	created := make([]domain.Rule, len(rules))
	for i, r := range rules {
		created[i] = domain.Rule{ID: "new-rule", Value: r.Value}
		m.rules = append(m.rules, created[i])
	}
	return created, nil
}

// mockStream implements driven.EventStream, replaying chunks then failing
// with err (or blocking until cancelled when err and closeAfter are unset).
type mockStream struct {
	chunks     []string
	err        error
	closeAfter bool

	mu    sync.Mutex
	sent  int
	opens int
}

func (m *mockStream) Open(ctx context.Context) (<-chan domain.RawChunk, <-chan error) {
	m.mu.Lock()
	m.opens++
	m.mu.Unlock()

	chunks := make(chan domain.RawChunk)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		for _, c := range m.chunks {
			select {
			case <-ctx.Done():
				return
			case chunks <- domain.RawChunk(c):
				m.mu.Lock()
				m.sent++
				m.mu.Unlock()
			}
		}

		switch {
		case m.err != nil:
			errs <- m.err
		case m.closeAfter:
		default:
			<-ctx.Done()
		}
	}()

	return chunks, errs
}

func (m *mockStream) Sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

// failingSink fails every append after the first n.
type failingSink struct {
	n    int
	rows int
}

func (f *failingSink) Name() string { return "failing" }

func (f *failingSink) Append(_ context.Context, _ domain.TweetRecord) error {
	if f.rows >= f.n {
		return errors.New("quota exceeded")
	}
	f.rows++
	return nil
}

func (f *failingSink) Close() error { return nil }

// staticOpener implements driven.SinkOpener with fixed results.
type staticOpener struct {
	sink driven.Sink
	err  error
}

func (s *staticOpener) Open(_ context.Context) (driven.Sink, error) {
	return s.sink, s.err
}

// validator implements Validator with a fixed result.
type validator struct{ err error }

func (v validator) Validate() error { return v.err }

const (
	validChunk1 = `{"data":{"id":"1","created_at":"T1","text":"first"},"includes":{"users":[{"username":"ann"}]}}`
	validChunk2 = `{"data":{"id":"2","created_at":"T2","text":"second"},"includes":{"users":[{"username":"bob"}]}}`
	validChunk3 = `{"data":{"id":"3","created_at":"T3","text":"third"},"includes":{"users":[{"username":"cat"}]}}`
)
