package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/serene/backend/internal/config"
	"github.com/zhouzirui/serene/backend/internal/handler"
	"github.com/zhouzirui/serene/backend/internal/metrics"
	"github.com/zhouzirui/serene/backend/internal/model/catalog"
	"github.com/zhouzirui/serene/backend/internal/model/mood"
	"github.com/zhouzirui/serene/backend/internal/platform/logger"
	"github.com/zhouzirui/serene/backend/internal/service/chat"
	"github.com/zhouzirui/serene/backend/internal/service/companion"
	"github.com/zhouzirui/serene/backend/internal/service/journal"
	moodservice "github.com/zhouzirui/serene/backend/internal/service/mood"
	"github.com/zhouzirui/serene/backend/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init("serene-api", cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		log.Warn().Err(envErr).Msg("no .env file, continuing with system environment variables only")
	}

	collector := metrics.NewCollector("serene")

	moodStore, health, closeStore, err := openMoodStore(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open mood store")
	}
	defer closeStore()

	chatOpts := []chat.Option{
		chat.WithMetrics(collector),
		chat.WithHistoryLimit(cfg.AI.HistoryLimit),
	}

	deps := handler.Deps{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Moods:          moodservice.NewService(moodStore, moodservice.WithMetrics(collector)),
		Journal:        journal.NewService(),
		Catalog:        catalog.NewMemoryStore(catalog.Seed()),
		Metrics:        collector,
		Health:         health,
	}

	// Companion is optional, canned replies are used without it
	if cfg.AI.Enabled() {
		companionSvc, err := companion.NewService(ctx, cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize companion, continuing with canned replies - 请检查 Ark 模型相关环境变量")
		} else {
			chatOpts = append(chatOpts, chat.WithCompanion(companionSvc))
			deps.Streamer = companionSvc
			log.Info().Str("model", cfg.AI.Model).Bool("stream", cfg.AI.StreamResponse).Msg("companion initialized")
		}
	} else {
		log.Info().Msg("Ark 凭证未配置，使用预设回复")
	}
	deps.Chat = chat.NewService(chatOpts...)

	router := handler.NewRouter(deps)

	startServer(ctx, cfg.Server, router)
}

// openMoodStore selects the mood storage backend.
func openMoodStore(cfg config.StorageConfig) (mood.Store, handler.HealthChecker, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.NewMoodStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite mood store")
		return store, store, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close sqlite store")
			}
		}, nil
	default:
		log.Info().Msg("using in-memory mood store")
		return mood.NewMemoryStore(), nil, func() {}, nil
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("Serene backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
