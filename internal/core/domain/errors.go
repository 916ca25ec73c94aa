package domain

import "errors"

// Pipeline error categories. Every category except ErrPayloadMalformed
// terminates the process.
var (
	// ErrConfiguration indicates a required setting is absent at startup.
	ErrConfiguration = errors.New("configuration error")

	// ErrReconciliation indicates the rule list or rule create request failed.
	ErrReconciliation = errors.New("rule reconciliation failed")

	// ErrSinkConnection indicates the sink document or worksheet could not be obtained.
	ErrSinkConnection = errors.New("sink connection failed")

	// ErrSinkAppend indicates a row could not be written to an open sink.
	ErrSinkAppend = errors.New("sink append failed")

	// ErrTransport indicates a connection-level failure on the event stream.
	ErrTransport = errors.New("stream transport error")

	// ErrStreamClosed indicates the server ended the stream body.
	// It is reported wrapped in ErrTransport.
	ErrStreamClosed = errors.New("stream closed by server")

	// ErrPayloadMalformed indicates a chunk failed to parse or lacked required fields.
	// It never leaves the transformer.
	ErrPayloadMalformed = errors.New("malformed payload")
)
