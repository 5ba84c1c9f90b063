package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/config"
	"github.com/HnM-Co/Yak-Tech/internal/fetcher"
	"github.com/HnM-Co/Yak-Tech/internal/models"
	"github.com/HnM-Co/Yak-Tech/internal/sheet"
	"github.com/HnM-Co/Yak-Tech/internal/snapshot"
	"github.com/HnM-Co/Yak-Tech/pkg/hira"
)

// main runs one catalog ingestion: exactly one source per invocation,
// then the snapshot writer persists whatever was collected. Only
// configuration problems exit non-zero; a run that collected nothing is
// still a normal exit, it just leaves the previous snapshot in place.
func main() {
	source := flag.String("source", "api", "catalog source: api (HIRA list service) or excel (HIRA release file)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Env)

	runID := uuid.New().String()[:8]
	log.Info().Str("run_id", runID).Str("source", *source).Msg("starting catalog ingestion")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *source {
	case "excel":
		runExcel(cfg)
	case "api":
		runAPI(ctx, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown source %q: use api or excel\n", *source)
		os.Exit(1)
	}
}

func runExcel(cfg *config.Config) {
	drugs, stats, err := sheet.IngestFile(cfg.Excel.Path)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Excel.Path).Msg("spreadsheet ingestion failed")
		fmt.Fprintf(os.Stderr, "spreadsheet ingestion failed: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Int("accepted", stats.Accepted).
		Int("skipped", stats.BlankName+stats.ZeroPrice+stats.MalformedRows).
		Msg("spreadsheet ingestion complete")

	persist(cfg, drugs)
}

func runAPI(ctx context.Context, cfg *config.Config) {
	if err := cfg.RequireHiraKey(); err != nil {
		log.Error().Err(err).Msg("API collection not configured")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log.Info().Str("service_key", cfg.MaskedHiraKey()).Msg("using HIRA API key")

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

	res := f.Run(ctx)
	if res.State.Aborted() {
		log.Warn().Str("state", string(res.State)).Int("collected", len(res.Drugs)).
			Msg("collection ended early, persisting partial result if any")
	}

	persist(cfg, res.Drugs)
}

func persist(cfg *config.Config, drugs []models.Drug) {
	if err := snapshot.Write(cfg.Snapshot.Path, snapshot.Build(drugs)); err != nil {
		log.Error().Err(err).Str("path", cfg.Snapshot.Path).Msg("failed to write snapshot")
		fmt.Fprintf(os.Stderr, "failed to write snapshot: %v\n", err)
		os.Exit(1)
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
