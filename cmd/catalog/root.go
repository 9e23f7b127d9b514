package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-service/internal/product/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Read-only product catalog service",
	Long: `catalog serves a jewelry product catalog straight from an existing
database whose products table layout is discovered at request time.

Use "catalog serve" to run the HTTP API and "catalog query" to run the
same lookups from the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.LoadEnv(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	return logger.NewZapLogger(logConfig)
}

func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return database.Open(ctx, &database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
	})
}

func newUseCase(db *sqlx.DB, cfg *config.Config, log logger.ZapLogger) (product.UseCase, error) {
	repo, err := prodRepoPkg.NewSQLRepository(db, prodRepoPkg.Config{
		ProductsTable: cfg.Database.ProductsTable,
		ImagesTable:   cfg.Database.ImagesTable,
		IDCandidates:  cfg.Database.IDCandidates,
	})
	if err != nil {
		return nil, err
	}
	return prodUCPkg.NewProductUseCase(repo, log), nil
}
