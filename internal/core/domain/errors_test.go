package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrConfiguration", ErrConfiguration},
		{"ErrReconciliation", ErrReconciliation},
		{"ErrSinkConnection", ErrSinkConnection},
		{"ErrSinkAppend", ErrSinkAppend},
		{"ErrTransport", ErrTransport},
		{"ErrStreamClosed", ErrStreamClosed},
		{"ErrPayloadMalformed", ErrPayloadMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrTransport_WrapsStreamClosed(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrTransport, ErrStreamClosed)

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, ErrStreamClosed))
	assert.False(t, errors.Is(err, ErrReconciliation))
}
