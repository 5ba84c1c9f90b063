package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/catalog"
	"github.com/HnM-Co/Yak-Tech/internal/fetcher"
	"github.com/HnM-Co/Yak-Tech/internal/snapshot"
)

// RefreshWorker periodically re-collects the full drug list from the
// HIRA API, rewrites the snapshot and swaps the in-memory catalog.
type RefreshWorker struct {
	fetcher      *fetcher.Fetcher
	catalog      *catalog.Catalog
	snapshotPath string
	interval     time.Duration
}

// NewRefreshWorker constructs a RefreshWorker.
func NewRefreshWorker(f *fetcher.Fetcher, cat *catalog.Catalog, snapshotPath string, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		fetcher:      f,
		catalog:      cat,
		snapshotPath: snapshotPath,
		interval:     interval,
	}
}

// Start begins the periodic refresh loop and listens for context
// cancellation.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting catalog refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Catalog refresh worker stopped")
			return
		}
	}
}

func (w *RefreshWorker) run(ctx context.Context) {
	runID := uuid.New().String()[:8]
	log.Info().Str("run_id", runID).Msg("Starting catalog refresh...")

	res := w.fetcher.Run(ctx)
	if len(res.Drugs) == 0 {
		log.Warn().Str("run_id", runID).Str("state", string(res.State)).
			Msg("refresh collected nothing, keeping current catalog")
		return
	}

	snap := snapshot.Build(res.Drugs)
	if err := snapshot.Write(w.snapshotPath, snap); err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("failed to persist refreshed snapshot")
		// The in-memory catalog is still swapped: serving fresh data
		// beats serving none.
	}
	w.catalog.Replace(snap)

	log.Info().
		Str("run_id", runID).
		Str("state", string(res.State)).
		Int("count", len(res.Drugs)).
		Int("pages", res.Pages).
		Msg("Catalog refresh completed")
}
