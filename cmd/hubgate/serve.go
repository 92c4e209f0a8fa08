package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hubgate/hubgate/internal/api"
	"github.com/hubgate/hubgate/internal/config"
	"github.com/hubgate/hubgate/internal/hub"
	"github.com/hubgate/hubgate/internal/web/middleware"
	"github.com/hubgate/hubgate/internal/web/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST gateway",
	Long:  "Start the HTTP server and serve read-only hub queries until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := buildLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Hub.DatabaseURL == "" {
		return fmt.Errorf("hub.database_url is required (or set HUBGATE_HUB_DATABASE_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Hub.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to hub database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping hub database: %w", err)
	}
	logger.Info("connected to hub database")

	reader := api.NewHubReader(hub.NewPostgresService(pool))
	router := api.NewRouter(api.RouterConfig{
		Reader:     reader,
		MaxLimit:   cfg.API.MaxLimit,
		EnableDocs: cfg.API.EnableDocs,
	})

	handler := middleware.NewChain(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	).Then(router)

	serverConfig := server.DefaultConfig(handler)
	serverConfig.Address = cfg.Server.Address()

	srv, err := server.New(serverConfig)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	shutdownConfig := server.DefaultShutdownConfig()
	shutdownConfig.Logger = zap.NewStdLog(logger)

	graceful := server.NewGracefulShutdown(srv, shutdownConfig)
	graceful.RegisterHook(func(ctx context.Context) error {
		pool.Close()
		logger.Info("hub database pool closed")
		return nil
	})

	logger.Info("serving hub queries",
		zap.String("address", cfg.Server.Address()),
		zap.Int("max_limit", cfg.API.MaxLimit),
		zap.Bool("docs", cfg.API.EnableDocs),
	)
	return graceful.Start()
}

// buildLogger creates a production zap logger at the configured level
func buildLogger(level string) (*zap.Logger, error) {
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = parsed
	return zapConfig.Build()
}
