package grpcx

import (
	"context"
	"time"

	"github.com/cwrk-planet/meeting-service/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName: имя сервиса в grpc.health.v1; "" отвечает за сервер целиком.
const ServiceName = "cwrk.meetings.v1.MeetingService"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health держит статус health-сервиса в соответствии с доступностью Postgres.
type Health struct {
	srv      *health.Server
	db       Pinger
	interval time.Duration
}

func NewHealth(db Pinger, interval time.Duration) *Health {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	h := &Health{srv: health.NewServer(), db: db, interval: interval}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

func (h *Health) Register(gs *grpc.Server) {
	healthpb.RegisterHealthServer(gs, h.srv)
}

// Run проверяет базу сразу и затем каждые interval, пока жив ctx.
func (h *Health) Run(ctx context.Context) {
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

func (h *Health) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, h.interval/2)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := h.db.Ping(pingCtx); err != nil {
		logger.FromCtx(ctx).Warn("health: postgres ping failed", logger.Err(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.set(st)
	return st
}

// Shutdown переводит все сервисы в NOT_SERVING перед остановкой.
func (h *Health) Shutdown() {
	h.srv.Shutdown()
}

func (h *Health) set(st healthpb.HealthCheckResponse_ServingStatus) {
	h.srv.SetServingStatus("", st)
	h.srv.SetServingStatus(ServiceName, st)
}
