package grpc

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name under which the record store health is reported. The empty name
// reports the overall server status.
const Service = "tinkoko.RecordStore"

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthServiceArgs are the mandatory args to instantiate the HealthService.
type HealthServiceArgs struct {
	// Pinger is probed to tell whether the store is reachable.
	Pinger pinger
}

// HealthServiceOptArgs are the optional arguments for building a HealthService.
type HealthServiceOptArgs = func(*HealthService)

// WithInterval overrides the probe interval.
func WithInterval(interval time.Duration) HealthServiceOptArgs {
	return func(h *HealthService) {
		h.interval = interval
	}
}

// HealthService serves grpc.health.v1 with a status following the store reachability.
type HealthService struct {
	*health.Server
	pinger   pinger
	interval time.Duration
}

// NewHealthService creates a new HealthService. Statuses start as NOT_SERVING until the first probe.
func NewHealthService(args HealthServiceArgs, opts ...HealthServiceOptArgs) *HealthService {
	h := &HealthService{Server: health.NewServer(), pinger: args.Pinger, interval: 10 * time.Second}
	for _, opt := range opts {
		opt(h)
	}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Probe pings the store once and updates the served status.
func (h *HealthService) Probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		log.WithError(err).Warn("record store is not reachable")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.set(status)
}

// Run probes the store on every interval until ctx is done, then marks the server as shutting down.
func (h *HealthService) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return
		case <-ticker.C:
			h.Probe(ctx)
		}
	}
}

func (h *HealthService) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.SetServingStatus("", status)
	h.SetServingStatus(Service, status)
}
