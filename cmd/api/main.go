package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/conexion-ipp/backend/config"
	"github.com/conexion-ipp/backend/internal/auth"
	"github.com/conexion-ipp/backend/internal/bootstrap"
	"github.com/conexion-ipp/backend/internal/migrate"
	"github.com/conexion-ipp/backend/internal/storage/postgres"
)

const serviceName = "conexion-ipp-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := newLogger(cfg.App.Environment)
	defer func() { _ = logger.Sync() }()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := postgres.DSN(&cfg.Database)

	if err := migrate.Up(ctx, dsn); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: dsn})
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer pool.Close()

	db := &postgres.DB{Pool: pool}

	// A missing credential artifact does not halt startup; every protected
	// route then fails closed with 401.
	var verifier auth.TokenVerifier
	if client, err := auth.InitializeFirebase(&cfg.Firebase); err != nil {
		logger.Warn("firebase admin SDK not initialized, protected routes will reject all requests",
			zap.Error(err))
	} else {
		verifier = auth.NewVerifier(client, logger)
		logger.Info("firebase admin SDK initialized")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          db,
		SessionPool: pool,
		Verifier:    verifier,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("init logger: %v", err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	return logger
}
