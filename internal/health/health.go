package health

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the gRPC health service name reported for the catalog.
const ServiceName = "omnipos.catalog.v1.CatalogService"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Checker mirrors database reachability into a gRPC health server, both for
// the catalog service name and for the overall ("") status.
type Checker struct {
	db       Pinger
	server   *grpchealth.Server
	interval time.Duration
	logger   logger.ZapLogger
}

func NewChecker(db Pinger, interval time.Duration, log logger.ZapLogger) *Checker {
	return &Checker{
		db:       db,
		server:   grpchealth.NewServer(),
		interval: interval,
		logger:   log,
	}
}

// Register exposes the health service and server reflection on s.
func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.server)
	reflection.Register(s)
}

func (c *Checker) Server() *grpchealth.Server {
	return c.server
}

// Update pings the database once and publishes the result.
func (c *Checker) Update(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := c.db.PingContext(ctx); err != nil {
		c.logger.Warn("catalog database unreachable", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return status
}

// Run updates the status every interval until ctx is done, then marks the
// server as shutting down.
func (c *Checker) Run(ctx context.Context) {
	c.Update(ctx)
	if c.interval <= 0 {
		<-ctx.Done()
		c.server.Shutdown()
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Update(ctx)
		}
	}
}
