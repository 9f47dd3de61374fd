package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dentalcare/clinic-portal/internal/api"
	"github.com/dentalcare/clinic-portal/internal/core/service"
	mongodb "github.com/dentalcare/clinic-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/dentalcare/clinic-portal/internal/infrastructure/db/redis"
	"github.com/dentalcare/clinic-portal/internal/infrastructure/queue"
	"github.com/dentalcare/clinic-portal/internal/infrastructure/session"
	"github.com/dentalcare/clinic-portal/internal/pkg/config"
	"github.com/dentalcare/clinic-portal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("index creation failed, continuing")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// The session store degrades to its memory tier without Redis,
		// but the process should not start silently degraded.
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	sessions := session.NewStore(session.NewRedisTier(rdb, cfg.Redis.SessionTTL), logger.Component("session"))

	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	audit := queue.NewDispatcher(cfg.AuditWorkers, auditService, logger.Component("audit"))
	audit.Start(ctx)

	e := api.NewRouter(cfg, db, rdb, sessions, audit, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("clinic portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
