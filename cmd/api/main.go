package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"chantierpro/api/internal/cache"
	"chantierpro/api/internal/config"
	"chantierpro/api/internal/database"
	"chantierpro/api/internal/handlers"
	"chantierpro/api/internal/jobs"
	"chantierpro/api/internal/log"
	"chantierpro/api/internal/mailer"
	"chantierpro/api/internal/queue"
	"chantierpro/api/internal/repository"
	"chantierpro/api/internal/server"
	"chantierpro/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, objectStore, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(
		repository.NewSessionRepository(dbPool),
		repository.NewTokenRepository(dbPool),
		logger,
	)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	mailConsumer := startMailConsumer(ctx, cfg, redisClient, logger)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, mailConsumer, dbPool, redisClient)
}

// startMailConsumer drains the outbound mail stream in-process. Returns the
// cancel func that stops the consume loop.
func startMailConsumer(ctx context.Context, cfg *config.AppConfig, redisClient *redis.Client, logger zerolog.Logger) context.CancelFunc {
	dispatcher := mailer.NewDispatcher(mailer.NewClient(cfg.SMTP, logger), logger)
	consumer := queue.NewConsumer(
		redisClient,
		mailer.Stream,
		mailer.ConsumerGroup,
		"api-mailer",
		30*time.Second,
		logger,
		dispatcher,
	)

	if err := consumer.EnsureGroup(ctx); err != nil {
		logger.Error().Err(err).Msg("mail consumer group setup failed")
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := consumer.Start(consumeCtx); err != nil && consumeCtx.Err() == nil {
			logger.Error().Err(err).Msg("mail consumer stopped")
		}
	}()
	return cancel
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, stopConsumer context.CancelFunc, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	stopConsumer()
	scheduler.Stop()

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
