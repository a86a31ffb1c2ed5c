package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sayitbetter/backend/internal/api"
	"github.com/sayitbetter/backend/internal/config"
	"github.com/sayitbetter/backend/internal/core"
	"github.com/sayitbetter/backend/internal/llm"
	"github.com/sayitbetter/backend/internal/logger"
	"github.com/sayitbetter/backend/internal/store"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	// Storage: durable Redis tier when configured, ephemeral memory tier
	// always available as fallback.
	var primary store.BlobStore
	if cfg.RedisConfigured() {
		client := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Username:     cfg.RedisUsername,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable at startup, calls will use the ephemeral fallback", zap.Error(err))
		} else {
			log.Info("redis connection successful")
		}
		cancel()

		primary = store.NewRedisStore(client)
		defer client.Close()
	} else {
		log.Warn("redis not configured, cloud storage is memory-only")
	}
	blobs := store.NewFallbackStore(primary, store.NewMemoryStore(), log)
	shares := store.NewShareStore()

	// Inference providers. Either one may be absent: translation then
	// reports a configuration error, theme analysis fails open.
	var translateService *core.TranslateService
	if cfg.Completion.Configured() {
		translateService = core.NewTranslateService(llm.NewClient(cfg.Completion), log)
	} else {
		log.Warn("completion provider not configured, /translate is disabled")
	}

	var themeService *core.ThemeService
	var embedder core.Embedder
	if cfg.Embedding.Configured() {
		embedder = llm.NewClient(cfg.Embedding)
		themeService = core.NewThemeService(embedder, cfg.RecurringThreshold, log)
	} else {
		log.Warn("embedding provider not configured, theme analysis is disabled")
	}

	apiHandler := api.NewAPIHandler(translateService, themeService, embedder, blobs, shares, log)
	router := api.NewRouter(apiHandler, cfg.CORSAllowedOrigins)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", serverAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not listen", zap.String("addr", serverAddr), zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}
