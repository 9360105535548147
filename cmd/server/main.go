package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/primowater/deliveryform/internal/api"
	"github.com/primowater/deliveryform/internal/config"
	"github.com/primowater/deliveryform/internal/formspree"
	"github.com/primowater/deliveryform/internal/metrics"
	"github.com/primowater/deliveryform/internal/repository"
	"github.com/primowater/deliveryform/internal/repository/memory"
	"github.com/primowater/deliveryform/internal/repository/postgres"
	"github.com/primowater/deliveryform/internal/service"
	"github.com/primowater/deliveryform/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	repos, closeRepos, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open submission store", zap.Error(err))
	}
	defer closeRepos()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := session.NewStore(cfg.Session.TTL, logger)
	go sessions.Run(ctx, cfg.Session.SweepInterval)

	m := metrics.New()
	m.RegisterSessionGauge(sessions.Len)

	client := formspree.NewClient(cfg.FormEndpoint, logger)

	router, err := api.NewRouter(cfg, api.Dependencies{
		Forms:       service.NewFormService(m, logger),
		Submissions: service.NewSubmissionService(client, repos, m, logger),
		Repos:       repos,
		Sessions:    sessions,
		Metrics:     m,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("form_endpoint", cfg.FormEndpoint.URL),
			zap.Bool("database", cfg.Database.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	// In-flight submissions finish within the endpoint timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.FormEndpoint.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// openRepositories uses Postgres when DB_HOST is set and memory otherwise
func openRepositories(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, func(), error) {
	if !cfg.Database.Enabled() {
		logger.Warn("DB_HOST not set, submission records are kept in memory")
		return memory.NewRepositories(), func() {}, nil
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.DBName),
	)
	return postgres.NewRepositories(db, logger), func() { db.Close() }, nil
}
