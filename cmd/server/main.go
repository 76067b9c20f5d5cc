package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codefolio/portfolio-api/internal/api"
	"github.com/codefolio/portfolio-api/internal/infrastructure/auth"
	"github.com/codefolio/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/codefolio/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/codefolio/portfolio-api/internal/infrastructure/db/redis"
	"github.com/codefolio/portfolio-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// Missing provider configuration is fatal here, never a per-request
	// condition.
	provider, err := auth.NewClient(auth.Config{
		BaseURL:   cfg.Auth.BaseURL,
		AnonKey:   cfg.Auth.AnonKey,
		JWTSecret: cfg.Auth.JWTSecret,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("auth provider configuration invalid")
	}

	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		Provider:   provider,
		Cookies:    auth.CookieCodec{Secure: cfg.Session.SecureCookies},
		SessionTTL: cfg.Session.TTL,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("portfolio api started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("portfolio api stopped cleanly")
}
