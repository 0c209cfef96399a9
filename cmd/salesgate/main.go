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
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/salesgate/internal/config"
	"github.com/kailas-cloud/salesgate/internal/db"
	dbElastic "github.com/kailas-cloud/salesgate/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/salesgate/internal/db/redis"
	logpkg "github.com/kailas-cloud/salesgate/internal/logger"
	"github.com/kailas-cloud/salesgate/internal/metrics"
	salesrepo "github.com/kailas-cloud/salesgate/internal/repository/sales"
	chiTransport "github.com/kailas-cloud/salesgate/internal/transport/chi"
	healthuc "github.com/kailas-cloud/salesgate/internal/usecase/health"
	seeduc "github.com/kailas-cloud/salesgate/internal/usecase/seed"
	statsuc "github.com/kailas-cloud/salesgate/internal/usecase/stats"
	"github.com/kailas-cloud/salesgate/internal/version"
)

func main() {
	os.Exit(serve())
}

// serve returns the process exit code once the logger has been flushed.
func serve() int {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	return exitCode(logger, run(cfg, logger))
}

// exitCode logs how run ended and maps it to a process exit code.
func exitCode(logger *zap.Logger, err error) int {
	if err != nil {
		logger.Error("salesgate stopped with error", zap.Error(err))
		return 1
	}
	logger.Info("Server stopped gracefully")
	return 0
}

func run(cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting salesgate",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("collection", cfg.Collection.Name),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Register metrics explicitly (no init())
	metrics.Register()

	raw, err := newStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer raw.Close()

	if err := raw.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	store := db.Instrument(raw, cfg.Database.Driver)

	repo := salesrepo.New(store, cfg.Collection.Name)
	gate := seeduc.NewGate()
	seedSvc := seeduc.New(repo, gate)
	statsSvc := statsuc.New(repo, gate).WithListSize(cfg.Collection.ListSize)
	healthSvc := healthuc.New(store, gate).WithCollection(repo)

	server := chiTransport.NewServer(statsSvc, healthSvc).
		WithRequestTimeout(cfg.Database.RequestTimeout())
	handler := chiTransport.NewRouter(server, logger, chiTransport.RouterOptions{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		APIKeys:     cfg.Auth.APIKeys,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	seedCtx := logpkg.With(logpkg.ContextWithLogger(ctx, logger),
		zap.String("component", "seed"),
		zap.String("collection", cfg.Collection.Name),
	)
	seed := func() {
		outcome := seedSvc.EnsureSeeded(seedCtx)
		logger.Info("Seeding finished", zap.String("outcome", string(outcome)))
	}

	switch {
	case !cfg.Seed.IsEnabled():
		gate.Open()
	case cfg.Seed.BlockStartup:
		seed()
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Seed.IsEnabled() && !cfg.Seed.BlockStartup {
		g.Go(func() error {
			seed()
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newStore creates the search engine store for the configured driver.
func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverElasticsearch:
		return dbElastic.NewStore(dbElastic.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	case config.DriverRedis:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
