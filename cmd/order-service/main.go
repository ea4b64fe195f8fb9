package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/LavaJover/shvark-trade-order-service/internal/app/background"
	"github.com/LavaJover/shvark-trade-order-service/internal/app/setup"
	"github.com/LavaJover/shvark-trade-order-service/internal/config"
	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	slog.SetDefault(logger.New(cfg.LogConfig))
	// prices go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	ucs := setup.InitializeUseCases(deps)

	// gRPC: health + reflection
	grpcServer, healthReporter := grpcapi.NewGRPCServer()
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	// HTTP API
	healthHandler := handlers.NewHealthHandler(0,
		handlers.HealthCheck{Name: "database", Critical: true, Ping: deps.PingDB},
		handlers.HealthCheck{Name: "cache", Ping: deps.CacheStore.Ping},
	)
	router, err := handlers.NewRouter(
		handlers.NewOrderHandler(ucs.OrderUsecase),
		healthHandler,
		middleware.HeaderCallerResolver{},
		deps.Registry,
		ucs.HTTPMetrics,
	)
	if err != nil {
		log.Fatalf("failed to init http router: %v", err)
	}
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	tasks := background.NewBackgroundTasks(
		ucs.OrderUsecase,
		healthReporter,
		cfg.Background.RepairInterval,
		cfg.Background.HealthInterval,
		background.Probe{Name: "database", Services: []string{"", grpcapi.OrderServiceName}, Ping: deps.PingDB},
		background.Probe{Name: "cache", Services: []string{grpcapi.CacheServiceName}, Ping: deps.CacheStore.Ping},
	)
	tasks.StartAll(ctx)

	go func() {
		slog.Info("gRPC server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC server stopped", "error", err)
			stop()
		}
	}()

	go func() {
		slog.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	healthReporter.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()

	if err := deps.Close(); err != nil {
		slog.Error("failed to release resources", "error", err)
	}
	slog.Info("stopped")
}
