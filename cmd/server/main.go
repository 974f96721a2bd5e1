package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifeflow/donation-platform/internal/api"
	"github.com/lifeflow/donation-platform/internal/core/ports"
	"github.com/lifeflow/donation-platform/internal/core/service"
	"github.com/lifeflow/donation-platform/internal/infrastructure/config"
	mongostore "github.com/lifeflow/donation-platform/internal/infrastructure/db/mongo"
	redisstore "github.com/lifeflow/donation-platform/internal/infrastructure/db/redis"
	"github.com/lifeflow/donation-platform/internal/infrastructure/email"
	"github.com/lifeflow/donation-platform/internal/infrastructure/queue"
	"github.com/lifeflow/donation-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	var notifier ports.Notifier
	if cfg.SMTP.Host != "" {
		notifier = email.NewSMTPNotifier(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, emails will be logged instead of sent")
		notifier = email.NewLogNotifier(log)
	}

	mailer := service.NewAppointmentMailer(notifier, log)
	dispatcher := queue.NewDispatcher(0, mailer, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, notifier, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the unique, TTL and geospatial indexes the
// repositories rely on. Runs at startup so a fresh database is usable
// without manual setup.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongostore.NewAdminRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongostore.NewOTPRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongostore.NewDonorRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongostore.NewCampRepository(db).EnsureIndexes(ctx)
}
