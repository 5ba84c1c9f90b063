// Package snapshot persists and loads the catalog document consumed by
// the frontend. The file is the only state the system keeps, so a run
// that collected nothing must never clobber a good snapshot.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/models"
)

// Build wraps records with run metadata. LastUpdated is the wall-clock
// date of this run, saying nothing about how fresh the upstream data is.
func Build(drugs []models.Drug) *models.Snapshot {
	return &models.Snapshot{
		LastUpdated: time.Now().Format("2006-01-02"),
		TotalCount:  len(drugs),
		Drugs:       drugs,
	}
}

// Write serializes a snapshot to path. An empty snapshot skips the write
// entirely and leaves the previous file untouched. The document is
// compact JSON with unescaped non-ASCII text, written through a temp
// file and rename so a crashed run cannot truncate the previous file.
func Write(path string, snap *models.Snapshot) error {
	if snap == nil || len(snap.Drugs) == 0 {
		log.Warn().Str("path", path).Msg("no records collected, keeping previous snapshot")
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".drugs-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot %q: %w", path, err)
	}

	log.Info().Str("path", path).Int("count", snap.TotalCount).Msg("snapshot written")
	return nil
}

// Load reads a snapshot document from path.
func Load(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", path, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %q is not valid JSON: %w", path, err)
	}
	return &snap, nil
}
