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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/menuhq/pos-admin/internal/cache"
	"github.com/menuhq/pos-admin/internal/config"
	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/export"
	"github.com/menuhq/pos-admin/internal/handler"
	"github.com/menuhq/pos-admin/internal/logger"
	"github.com/menuhq/pos-admin/internal/metrics"
	"github.com/menuhq/pos-admin/internal/notify"
	"github.com/menuhq/pos-admin/internal/router"
	"github.com/menuhq/pos-admin/internal/service"
	"github.com/menuhq/pos-admin/internal/ws"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		version, err := database.Migrate(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		log.Info().Uint("version", version).Msg("migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m := metrics.New()
	hub := ws.NewHub()
	go hub.Run(ctx)
	m.RegisterClientGauge(hub.ClientCount)

	deps := router.Deps{Pool: pool, Hub: hub, Metrics: m}

	// Every optional sink stays a nil interface when unconfigured.
	var invalidator notify.Invalidator
	rdb, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		snapshots := cache.NewSnapshotCache(rdb, cfg.CacheTTL)
		if err := snapshots.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, snapshot cache will miss until it recovers")
		}
		deps.Cache = snapshots
		invalidator = snapshots
	} else {
		log.Info().Msg("REDIS_URL not set, snapshot cache disabled")
	}

	var publisher notify.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka change feed enabled")
	}

	var uploader handler.SnapshotUploader
	if cfg.S3Bucket != "" {
		up, err := export.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			return err
		}
		uploader = up
	}
	deps.Uploader = uploader
	deps.Notifier = notify.NewDispatcher(invalidator, hub, publisher, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Compile-time checks that the concrete components satisfy the seams.
var (
	_ service.SnapshotCache    = (*cache.SnapshotCache)(nil)
	_ notify.Invalidator       = (*cache.SnapshotCache)(nil)
	_ handler.SnapshotUploader = (*export.SnapshotUploader)(nil)
	_ handler.Notifier         = (*notify.Dispatcher)(nil)
	_ router.Pool              = (*pgxpool.Pool)(nil)
)
