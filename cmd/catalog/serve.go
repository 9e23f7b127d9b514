package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/health"
	"github.com/fekuna/omnipos-catalog-service/internal/httpserver"
	"github.com/fekuna/omnipos-catalog-service/internal/image"
	"github.com/fekuna/omnipos-catalog-service/internal/metrics"
	prodH "github.com/fekuna/omnipos-catalog-service/internal/product/handler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP API and the gRPC health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// 2. Initialize Logger
		appLogger := newLogger(cfg)
		defer appLogger.Sync()

		// 3. Connect to Database
		db, err := openDatabase(cmd.Context(), cfg)
		if errors.Is(err, database.ErrDatabaseNotFound) {
			appLogger.Fatal("Catalog database file not found", zap.String("dsn", cfg.Database.DSN), zap.Error(err))
		}
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to catalog database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("products_table", cfg.Database.ProductsTable),
		)

		// 4. Initialize UseCase
		prodUC, err := newUseCase(db, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Could not initialize product usecase", zap.Error(err))
		}

		// 5. Initialize Handlers
		images := image.NewLocalServer(cfg.Assets.ProductsDir)
		prodHandler := prodH.NewProductHandler(prodUC, images, cfg.Server.PublicBaseURL, appLogger)

		mux := http.NewServeMux()
		prodHandler.Register(mux)
		mux.Handle("GET /metrics", metrics.Handler())

		httpServer := httpserver.New(&httpserver.Config{
			Port:           cfg.Server.HTTPPort,
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
		}, mux, appLogger)

		// 6. Start gRPC health server
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		grpcPort := cfg.Server.GRPCPort
		if !strings.Contains(grpcPort, ":") {
			grpcPort = ":" + grpcPort
		}
		lis, err := net.Listen("tcp", grpcPort)
		if err != nil {
			appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
		}

		grpcServer := grpc.NewServer()
		checker := health.NewChecker(db, 30*time.Second, appLogger)
		checker.Register(grpcServer)
		go checker.Run(ctx)

		go func() {
			appLogger.Info("Starting gRPC health server", zap.String("port", grpcPort))
			if err := grpcServer.Serve(lis); err != nil {
				appLogger.Fatal("failed to serve grpc", zap.Error(err))
			}
		}()

		// 7. Start HTTP Server
		go func() {
			appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Fatal("failed to serve http", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		appLogger.Info("Shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("http shutdown", zap.Error(err))
		}
		grpcServer.GracefulStop()
		appLogger.Info("Server stopped")
		return nil
	},
}
