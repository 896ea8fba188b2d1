// Package metrics instruments the router with Prometheus collectors.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rbroggi/tinkoko/internal/actors/router"
)

// Metrics holds the invocation collectors and the registry they are registered on.
type Metrics struct {
	Registry           *prometheus.Registry
	InvocationsTotal   *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a dedicated registry, together with the Go runtime and process collectors.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	invocationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invocations_total",
		Help:      "Total number of dispatched invocations by resource, method and status code.",
	}, []string{"resource", "method", "status"})

	invocationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "invocation_duration_seconds",
		Help:      "Latency of dispatched invocations by resource and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "method"})

	registry.MustRegister(
		invocationsTotal,
		invocationDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:           registry,
		InvocationsTotal:   invocationsTotal,
		InvocationDuration: invocationDuration,
	}
}

// Instrument wraps the dispatcher so that every invocation is counted and timed.
func (m *Metrics) Instrument(next router.Dispatcher) router.Dispatcher {
	return &instrumented{next: next, metrics: m}
}

type instrumented struct {
	next    router.Dispatcher
	metrics *Metrics
}

func (i *instrumented) Dispatch(ctx context.Context, req router.Request) router.Response {
	start := time.Now()
	resp := i.next.Dispatch(ctx, req)

	// unmatched resources would blow up the label cardinality
	resource := req.Resource
	if resp.StatusCode == http.StatusNotFound && !isRoute(req) {
		resource = "unmatched"
	}

	i.metrics.InvocationsTotal.WithLabelValues(resource, req.HTTPMethod, strconv.Itoa(resp.StatusCode)).Inc()
	i.metrics.InvocationDuration.WithLabelValues(resource, req.HTTPMethod).Observe(time.Since(start).Seconds())
	return resp
}

func isRoute(req router.Request) bool {
	for _, route := range router.Routes {
		if route.Resource == req.Resource && route.Method == req.HTTPMethod {
			return true
		}
	}
	return false
}
