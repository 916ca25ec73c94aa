// Package metrics exposes Prometheus counters for the ingestion pipeline.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/tweetwatch/internal/logger"
)

const namespace = "tweetwatch"

// Collector holds the pipeline counters. A nil *Collector is valid and
// records nothing, so services can run without metrics.
type Collector struct {
	registry *prometheus.Registry

	chunksReceived  prometheus.Counter
	chunksDropped   prometheus.Counter
	recordsAppended prometheus.Counter
	ruleCreates     prometheus.Counter
	streamUp        prometheus.Gauge
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		chunksReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_chunks_total",
			Help:      "Total number of chunks read from the filtered stream, keep-alives included",
		}),
		chunksDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_dropped_total",
			Help:      "Total number of chunks that did not produce a tweet record",
		}),
		recordsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Total number of rows appended to the sink",
		}),
		ruleCreates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_creates_total",
			Help:      "Total number of filter rules created",
		}),
		streamUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_connected",
			Help:      "1 while the filtered stream is being consumed",
		}),
	}

	c.registry.MustRegister(
		c.chunksReceived,
		c.chunksDropped,
		c.recordsAppended,
		c.ruleCreates,
		c.streamUp,
	)
	return c
}

// Registry returns the registry the counters are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ChunkReceived counts one chunk read from the stream.
func (c *Collector) ChunkReceived() {
	if c != nil {
		c.chunksReceived.Inc()
	}
}

// ChunkDropped counts one chunk that produced no record.
func (c *Collector) ChunkDropped() {
	if c != nil {
		c.chunksDropped.Inc()
	}
}

// RecordAppended counts one row written to the sink.
func (c *Collector) RecordAppended() {
	if c != nil {
		c.recordsAppended.Inc()
	}
}

// RuleCreated counts one filter rule created on the service.
func (c *Collector) RuleCreated() {
	if c != nil {
		c.ruleCreates.Inc()
	}
}

// SetStreaming marks the stream as connected or not.
func (c *Collector) SetStreaming(up bool) {
	if c == nil {
		return
	}
	if up {
		c.streamUp.Set(1)
	} else {
		c.streamUp.Set(0)
	}
}

// Serve binds addr and exposes /metrics on it until ctx is cancelled.
// The listener is bound before Serve returns, so a port already in use is
// reported to the caller. Errors after that are only logged.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	if c == nil || addr == "" {
		return nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics on %s/metrics", ln.Addr())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener stopped: %v", err)
		}
	}()
	return nil
}
