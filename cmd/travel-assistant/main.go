// cmd/travel-assistant/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"travel-assistant/internal/assistant"
	"travel-assistant/internal/clients/genai"
	"travel-assistant/internal/clients/ocr"
	"travel-assistant/internal/clients/websearch"
	"travel-assistant/internal/common/config"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/common/observability"
	"travel-assistant/internal/gazetteer"
	"travel-assistant/internal/itinerary"
	"travel-assistant/internal/pipeline/extraction"
	"travel-assistant/internal/server"
	"travel-assistant/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting travel assistant",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	store, redisClient, err := newSessionStore(cfg.Session)
	if err != nil {
		zapLog.Fatal("session store init failed", zap.Error(err))
	}
	defer store.Close()
	if redisClient != nil {
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			zapLog.Fatal("redis ping failed", zap.Error(err))
		}
		zapLog.Info("redis session store connected", zap.String("address", cfg.Session.Redis.Address))
	}

	generator, err := genai.New(cfg.Backends.GenAI, log)
	if err != nil {
		zapLog.Fatal("genai client init failed", zap.Error(err))
	}

	ocrClient := ocr.NewClient(cfg.Backends.OCR, log)
	searchClient := websearch.NewClient(cfg.Backends.Search, log)
	extractor := extraction.New(ocrClient, generator, gazetteer.New(), log)

	itineraryService := itinerary.NewService(cfg.Pipeline, extractor, searchClient, generator, store, log)
	assistantService := assistant.NewService(cfg.Pipeline, searchClient, generator, store, log)

	srv := server.New(cfg.Server, server.NewHandlers(itineraryService, assistantService, log), log)
	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("travel assistant stopped gracefully")
}

// newSessionStore builds the configured session driver. The redis
// client is returned so main can ping it before serving.
func newSessionStore(cfg config.SessionConfig) (session.Store, *redis.Client, error) {
	if cfg.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := session.NewStore(session.StoreTypeRedis,
			session.WithRedisClient(client),
			session.WithRedisTTL(time.Duration(cfg.TTLHours)*time.Hour),
		)
		return store, client, err
	}

	store, err := session.NewStore(session.StoreTypeMemory)
	return store, nil, err
}
