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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/catalog"
	"github.com/HnM-Co/Yak-Tech/internal/config"
	"github.com/HnM-Co/Yak-Tech/internal/fetcher"
	"github.com/HnM-Co/Yak-Tech/internal/handler"
	"github.com/HnM-Co/Yak-Tech/internal/middleware"
	"github.com/HnM-Co/Yak-Tech/internal/worker"
	"github.com/HnM-Co/Yak-Tech/pkg/hira"
	"github.com/HnM-Co/Yak-Tech/pkg/mfds"
)

// main is the entrypoint for the read-only catalog API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting yak-tech catalog api")

	// 3. Load the current snapshot; an absent file just means an empty
	// catalog until the first ingestion run.
	cat := catalog.New()
	if err := cat.LoadFile(cfg.Snapshot.Path); err != nil {
		log.Warn().Err(err).Str("path", cfg.Snapshot.Path).
			Msg("no snapshot loaded, serving empty catalog")
	}

	// 4. Optional identification-service client for image lookup
	var mfdsClient *mfds.Client
	if cfg.MFDS.APIKey != "" {
		mfdsClient = mfds.NewClient(mfds.Config{
			BaseURL:    cfg.MFDS.BaseURL,
			ServiceKey: cfg.MFDS.APIKey,
			Timeout:    cfg.MFDS.Timeout,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 5. Background refresh, only when configured and a key is present
	if cfg.Worker.RefreshInterval > 0 {
		if err := cfg.RequireHiraKey(); err != nil {
			log.Warn().Err(err).Msg("refresh worker disabled")
		} else {
			client := hira.NewClient(hira.Config{
				BaseURL:    cfg.Hira.BaseURL,
				ServiceKey: cfg.Hira.APIKey,
				Timeout:    cfg.Hira.Timeout,
			})
			f := fetcher.New(client, fetcher.Config{
				PageSize:  cfg.Hira.PageSize,
				MaxPages:  cfg.Hira.MaxPages,
				PageDelay: cfg.Hira.PageDelay,
			})
			w := worker.NewRefreshWorker(f, cat, cfg.Snapshot.Path, cfg.Worker.RefreshInterval)
			go w.Start(ctx)
		}
	}

	// 6. Router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	catalogHandler := handler.NewCatalogHandler(cat, mfdsClient)
	healthHandler := handler.NewHealthHandler(cat)

	router.GET("/health", healthHandler.GetHealth)

	v1 := router.Group("/v1")
	{
		v1.GET("/drugs/search", catalogHandler.Search)
		v1.GET("/drugs/:id", catalogHandler.GetDrug)
		v1.GET("/drugs/:id/alternatives", catalogHandler.GetAlternatives)
		v1.GET("/drugs/:id/compare", catalogHandler.Compare)
		v1.GET("/drugs/:id/image", catalogHandler.GetImage)
	}

	// 7. Serve with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
