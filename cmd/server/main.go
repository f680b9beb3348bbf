package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JeanGrijp/credibility-gateway/internal/adapters/ai"
	"github.com/JeanGrijp/credibility-gateway/internal/adapters/auth"
	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/handlers"
	httpMiddleware "github.com/JeanGrijp/credibility-gateway/internal/adapters/http/middleware"
	"github.com/JeanGrijp/credibility-gateway/internal/adapters/http/router"
	memorystorage "github.com/JeanGrijp/credibility-gateway/internal/adapters/storage/memory"
	redisstorage "github.com/JeanGrijp/credibility-gateway/internal/adapters/storage/redis"
	"github.com/JeanGrijp/credibility-gateway/internal/config"
	"github.com/JeanGrijp/credibility-gateway/internal/core/ports"
	"github.com/JeanGrijp/credibility-gateway/internal/core/services"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/logger"
	"github.com/JeanGrijp/credibility-gateway/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()
	zap.ReplaceGlobals(logg)

	storage, closeFn, err := initStorage(cfg, logg)
	if err != nil {
		logg.Fatal("failed to init storage", zap.Error(err))
	}
	defer closeFn()

	limiter, err := services.NewRateLimiterService(storage, services.Config{
		AnonymousRule:           cfg.RateLimiter.AnonymousRule,
		AuthenticatedMultiplier: cfg.RateLimiter.AuthenticatedMultiplier,
	})
	if err != nil {
		logg.Fatal("failed to create limiter", zap.Error(err))
	}

	if cfg.AI.APIKey == "" {
		logg.Warn("AI_API_KEY not configured, analysis requests will fail")
	}

	m := metrics.New()
	httpClient := &http.Client{}

	authenticator := auth.New(auth.Config{
		BaseURL:  cfg.Auth.URL,
		AnonKey:  cfg.Auth.AnonKey,
		Timeout:  cfg.Auth.Timeout,
		CacheTTL: cfg.Auth.CacheTTL,
	}, httpClient)

	gateway := ai.New(ai.Config{
		URL:     cfg.AI.URL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, httpClient)

	handler := router.New(router.Deps{
		Logger:  logg,
		Metrics: m,
		Admit: httpMiddleware.RateLimiterOptions{
			Limiter:       limiter,
			Authenticator: authenticator,
			Multiplier:    limiter.Config().AuthenticatedMultiplier,
			Metrics:       m,
		},
		Analyze:  handlers.NewAnalyzeHandler(services.NewValidatorService(), gateway, m, cfg.Server.MaxBodyBytes),
		Exporter: m.Handler(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Type))
		err := srv.ListenAndServe()
		if err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logg.Info("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}

func initStorage(cfg config.Config, logg *zap.Logger) (ports.WindowStore, func(), error) {
	switch cfg.Storage.Type {
	case "memory":
		return memorystorage.New(memorystorage.WithSweepThreshold(cfg.RateLimiter.SweepThreshold)), func() {}, nil
	case "redis":
		redisCfg := redisstorage.Config{
			Addr:     fmt.Sprintf("%s:%d", cfg.Storage.Redis.Host, cfg.Storage.Redis.Port),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		}
		storage, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {
			if err := storage.Close(); err != nil {
				logg.Error("failed to close redis storage", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
