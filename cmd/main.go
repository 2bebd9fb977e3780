package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/meeting-service/config"
	"github.com/cwrk-planet/meeting-service/internal/auth"
	"github.com/cwrk-planet/meeting-service/internal/postgres"
	"github.com/cwrk-planet/meeting-service/internal/service"
	"github.com/cwrk-planet/meeting-service/internal/tracing"
	grpcx "github.com/cwrk-planet/meeting-service/internal/transport/grpc"
	httpx "github.com/cwrk-planet/meeting-service/internal/transport/http"
	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"
	"github.com/cwrk-planet/meeting-service/internal/transport/ws"
	"github.com/cwrk-planet/meeting-service/pkg/logger"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut := logger.RotatingFile(logger.FileConfig{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   true,
	})
	if logOut != nil {
		defer logOut.Close()
	}
	logger.Init(logger.Config{
		Env:       logger.ParseEnv(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
		Output:    logOut,
	})
	slog.Info("starting meeting-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- tracing ---
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.Logging.Service,
		Environment: cfg.Logging.Env,
		Version:     cfg.Logging.Version,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	// --- postgres ---
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		slog.Info("migrations applied")
	}
	db, err := postgres.New(ctx, postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
		ApplicationName: cfg.Logging.Service,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	// --- repos ---
	projectRepo := postgres.NewProjectRepository(db.Pool)
	meetingRepo := postgres.NewMeetingRepository(db.Pool)
	partRepo := postgres.NewParticipantRepository(db.Pool)
	boardRepo := postgres.NewBoardRepository(db.Pool)

	// --- services ---
	access := service.NewAccess(projectRepo)
	meetingSvc := service.NewMeetingService(meetingRepo, partRepo, access)
	meetingSvc.SetPerPageOptions(cfg.Meetings.PerPageOptions)
	meetingSvc.SetDefaultDuration(cfg.Meetings.DefaultDuration)
	boardSvc := service.NewBoardService(boardRepo, access)

	// --- WS Hub & Server ---
	hub := ws.NewHub()
	meetingSvc.SetEvents(ws.NewNotifier(hub))
	wsServer := ws.NewServer(hub, access)

	// --- auth ---
	var verifier httpmw.TokenVerifier
	if cfg.Auth.Mode == "jwt" {
		pub, err := auth.LoadRSAPublicKeyFromPEM(cfg.Auth.PublicKeyPath)
		if err != nil {
			log.Fatalf("auth public key: %v", err)
		}
		verifier = auth.NewVerifier(pub, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.ClockSkew)
	}

	// --- HTTP ---
	metrics := httpx.NewMetrics()
	handler := httpx.NewHandler(meetingSvc, boardSvc, metrics)
	router := httpx.NewRouter(handler, httpx.RouterOptions{
		Verifier:       verifier,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		WS:             wsServer.HandleWS,
	})
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// --- gRPC ---
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(10*time.Second)),
		grpc.ChainStreamInterceptor(grpcx.StreamServerInterceptor()),
	)
	healthSrv := grpcx.NewHealth(db, 10*time.Second)
	healthSrv.Register(grpcServer)
	go healthSrv.Run(ctx)

	// --- run both servers ---
	errCh := make(chan error, 2)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			errCh <- err
			return
		}
		slog.Info("grpc listen", "addr", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal")
	case err := <-errCh:
		slog.Error("server error", logger.Err(err))
	}

	stop()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthSrv.Shutdown()
	grpcServer.GracefulStop()
	if err := httpSrv.Shutdown(ctxShutdown); err != nil {
		slog.Warn("http shutdown", logger.Err(err))
	}
	if err := shutdownTracing(ctxShutdown); err != nil {
		slog.Warn("tracing shutdown", logger.Err(err))
	}
	slog.Info("stopped")
}
