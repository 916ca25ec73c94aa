package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector()

	c.ChunkReceived()
	c.ChunkReceived()
	c.ChunkDropped()
	c.RecordAppended()
	c.RuleCreated()
	c.SetStreaming(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.chunksReceived))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.chunksDropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.recordsAppended))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ruleCreates))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.streamUp))

	c.SetStreaming(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.streamUp))
}

func TestCollector_Registry(t *testing.T) {
	c := NewCollector()

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "tweetwatch_records_appended_total")
	assert.Contains(t, names, "tweetwatch_stream_chunks_total")
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.ChunkReceived()
		c.ChunkDropped()
		c.RecordAppended()
		c.RuleCreated()
		c.SetStreaming(true)
		assert.NoError(t, c.Serve(context.Background(), ":0"))
	})
	assert.Nil(t, c.Registry())
}

func TestCollector_Serve(t *testing.T) {
	c := NewCollector()
	c.RecordAppended()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	require.NoError(t, c.Serve(ctx, addr))

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "tweetwatch_records_appended_total 1")
}

func TestCollector_ServeAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = NewCollector().Serve(context.Background(), ln.Addr().String())

	assert.Error(t, err)
}

func TestCollector_ServeEmptyAddress(t *testing.T) {
	assert.NoError(t, NewCollector().Serve(context.Background(), ""))
}
