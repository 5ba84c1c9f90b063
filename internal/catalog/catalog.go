// Package catalog holds the current snapshot in memory and answers the
// read queries of the serve API: search, same-ingredient alternatives
// and price comparison.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/models"
	"github.com/HnM-Co/Yak-Tech/internal/normalize"
	"github.com/HnM-Co/Yak-Tech/internal/snapshot"
)

const (
	// minQueryRunes rejects one-character searches that would match most
	// of the catalog.
	minQueryRunes = 2
	// maxSearchResults caps result lists for rendering.
	maxSearchResults = 20
)

// Catalog is a swappable in-memory view over one snapshot. A refresh
// worker may replace the data while handlers read it.
type Catalog struct {
	mu   sync.RWMutex
	snap *models.Snapshot
	byID map[string]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{snap: &models.Snapshot{}, byID: map[string]int{}}
}

// LoadFile reads a snapshot from disk and makes it current.
func (c *Catalog) LoadFile(path string) error {
	snap, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	c.Replace(snap)
	log.Info().Str("path", path).Int("count", snap.TotalCount).
		Str("last_updated", snap.LastUpdated).Msg("catalog loaded")
	return nil
}

// Replace swaps in a new snapshot atomically.
func (c *Catalog) Replace(snap *models.Snapshot) {
	byID := make(map[string]int, len(snap.Drugs))
	for i, d := range snap.Drugs {
		if _, exists := byID[d.ID]; !exists {
			byID[d.ID] = i
		}
	}

	c.mu.Lock()
	c.snap = snap
	c.byID = byID
	c.mu.Unlock()
}

// Info returns the current snapshot's metadata.
func (c *Catalog) Info() (lastUpdated string, count int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.LastUpdated, len(c.snap.Drugs)
}

// Get looks up a drug by product code.
func (c *Catalog) Get(id string) (models.Drug, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return models.Drug{}, false
	}
	return c.snap.Drugs[idx], true
}

// Search matches the query against product names (as written) and
// ingredient names (case-folded), returning at most maxSearchResults in
// catalog order. Queries shorter than minQueryRunes return nothing.
func (c *Catalog) Search(query string) []models.Drug {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryRunes {
		return nil
	}
	lower := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []models.Drug
	for _, d := range c.snap.Drugs {
		if strings.Contains(d.Name, query) ||
			strings.Contains(strings.ToLower(d.IngredientName), lower) {
			results = append(results, d)
			if len(results) == maxSearchResults {
				break
			}
		}
	}
	return results
}

// Alternatives returns every drug sharing an ingredient code, cheapest
// first. The Unknown sentinel links nothing: records that could not be
// matched to an ingredient have no meaningful alternatives.
func (c *Catalog) Alternatives(ingredientCode string) []models.Drug {
	if ingredientCode == "" || ingredientCode == normalize.UnknownIngredientCode {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var alts []models.Drug
	for _, d := range c.snap.Drugs {
		if d.IngredientCode == ingredientCode {
			alts = append(alts, d)
		}
	}
	sort.SliceStable(alts, func(i, j int) bool { return alts[i].Price < alts[j].Price })
	return alts
}

// Compare builds a price comparison for one drug against its
// same-ingredient alternatives.
func (c *Catalog) Compare(id string) (*models.Comparison, bool) {
	original, ok := c.Get(id)
	if !ok {
		return nil, false
	}

	alts := c.Alternatives(original.IngredientCode)
	cheapest := original
	if len(alts) > 0 && alts[0].Price < cheapest.Price {
		cheapest = alts[0]
	}

	return &models.Comparison{
		Original:       original,
		Cheapest:       cheapest,
		Alternatives:   alts,
		SavingsPerUnit: original.Price - cheapest.Price,
	}, true
}
