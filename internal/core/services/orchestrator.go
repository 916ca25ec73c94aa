package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/tweetwatch/internal/core/domain"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driven"
	"github.com/custodia-labs/tweetwatch/internal/core/ports/driving"
	"github.com/custodia-labs/tweetwatch/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.Pipeline = (*Orchestrator)(nil)

// State is a stage of the pipeline.
type State int

const (
	// StateConfiguring validates the loaded configuration.
	StateConfiguring State = iota

	// StateReconciling ensures the filter rule exists.
	StateReconciling

	// StateConnectingSink opens the document and selects its first worksheet.
	StateConnectingSink

	// StateStreaming consumes the stream. It is the only long-lived state.
	StateStreaming

	// StateTerminated is reached on the first fatal error or on cancellation.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateReconciling:
		return "reconciling"
	case StateConnectingSink:
		return "connecting-sink"
	case StateStreaming:
		return "streaming"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Validator checks that configuration is complete.
type Validator interface {
	Validate() error
}

// Reconciler ensures the filter rule exists.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}

// Streamer consumes the stream into a sink.
type Streamer interface {
	Run(ctx context.Context, sink driven.Sink) error
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State)

// Orchestrator runs the pipeline stages strictly in order.
// Every failure moves straight to StateTerminated; nothing is retried.
type Orchestrator struct {
	config     Validator
	reconciler Reconciler
	sinks      driven.SinkOpener
	streamer   Streamer
	observers  []TransitionFunc

	mu    sync.RWMutex
	state State
}

// NewOrchestrator creates an orchestrator in StateConfiguring.
func NewOrchestrator(
	config Validator,
	reconciler Reconciler,
	sinks driven.SinkOpener,
	streamer Streamer,
) *Orchestrator {
	return &Orchestrator{
		config:     config,
		reconciler: reconciler,
		sinks:      sinks,
		streamer:   streamer,
		state:      StateConfiguring,
	}
}

// OnTransition registers fn to be called on every state change.
// Observers run synchronously on the pipeline goroutine.
func (o *Orchestrator) OnTransition(fn TransitionFunc) {
	o.observers = append(o.observers, fn)
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Run executes the pipeline. It only returns once terminated: with the
// fatal error that caused it, or with ctx.Err() after cancellation.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.config.Validate(); err != nil {
		return o.terminate(categorise(domain.ErrConfiguration, err))
	}

	o.transition(StateReconciling)
	if err := o.reconciler.Reconcile(ctx); err != nil {
		return o.terminate(categorise(domain.ErrReconciliation, err))
	}

	o.transition(StateConnectingSink)
	sink, err := o.sinks.Open(ctx)
	if err != nil {
		return o.terminate(categorise(domain.ErrSinkConnection, err))
	}
	if sink == nil {
		return o.terminate(fmt.Errorf("%w: no document handle", domain.ErrSinkConnection))
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("closing sink: %v", cerr)
		}
	}()

	o.transition(StateStreaming)
	err = o.streamer.Run(ctx, sink)
	if err == nil {
		// The stream is expected to run forever.
		err = fmt.Errorf("%w: %w", domain.ErrTransport, domain.ErrStreamClosed)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		o.transition(StateTerminated)
		return err
	}
	return o.terminate(categorise(domain.ErrTransport, err))
}

func (o *Orchestrator) terminate(err error) error {
	o.transition(StateTerminated)
	return err
}

func (o *Orchestrator) transition(to State) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()

	logger.Debug("Pipeline %s -> %s", from, to)
	for _, fn := range o.observers {
		fn(from, to)
	}
}

// categorise wraps err in category unless it already carries a pipeline category.
func categorise(category, err error) error {
	for _, known := range []error{
		domain.ErrConfiguration,
		domain.ErrReconciliation,
		domain.ErrSinkConnection,
		domain.ErrSinkAppend,
		domain.ErrTransport,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", category, err)
}
