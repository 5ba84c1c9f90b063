// Package fetcher collects the full drug list from the HIRA API by
// walking pages until the upstream runs out of data or misbehaves. The
// loop is an explicit state machine: every way it can stop is one of the
// enumerated terminal states, and the records gathered before stopping
// are always returned.
package fetcher

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/HnM-Co/Yak-Tech/internal/models"
	"github.com/HnM-Co/Yak-Tech/internal/normalize"
	"github.com/HnM-Co/Yak-Tech/pkg/hira"
)

// State is a terminal state of one collection run.
type State string

const (
	// StateExhausted is the normal end: an empty page.
	StateExhausted State = "EXHAUSTED"
	// StateAbortedHTTPError ends the run on a non-200 response or a
	// non-timeout transport failure.
	StateAbortedHTTPError State = "ABORTED_HTTP_ERROR"
	// StateAbortedParseError ends the run on a non-JSON body, which
	// usually means an access block or an outage page.
	StateAbortedParseError State = "ABORTED_PARSE_ERROR"
	// StateAbortedLogicError ends the run on an embedded error code.
	StateAbortedLogicError State = "ABORTED_LOGIC_ERROR"
	// StateAbortedTimeout ends the run on a request timeout, typically
	// network or IP-level blocking.
	StateAbortedTimeout State = "ABORTED_TIMEOUT"
	// StateAbortedSafetyLimit ends the run at the hard page bound.
	StateAbortedSafetyLimit State = "ABORTED_SAFETY_LIMIT"
)

// Aborted reports whether the run stopped for any reason other than
// reaching the end of the collection.
func (s State) Aborted() bool { return s != StateExhausted }

// Result is the outcome of one collection run. Drugs holds whatever was
// gathered before the terminal state, never discarded; the caller
// decides whether a partial catalog is worth persisting.
type Result struct {
	Drugs   []models.Drug
	State   State
	Pages   int
	Dropped int
}

// Client is the page-fetch dependency, satisfied by *hira.Client.
type Client interface {
	ListDrugs(ctx context.Context, pageNo, numOfRows int) (*hira.ListResponse, error)
}

// Config tunes one fetcher instance.
type Config struct {
	// PageSize is the numOfRows request parameter.
	PageSize int
	// MaxPages is the hard safety bound on pagination.
	MaxPages int
	// PageDelay spaces requests out to stay under upstream rate limits.
	PageDelay time.Duration
	// SkipProbe disables the single-item connectivity probe.
	SkipProbe bool
}

// Fetcher walks the HIRA list pages sequentially.
type Fetcher struct {
	client Client
	cfg    Config
}

// New constructs a Fetcher, applying defaults for unset config fields.
func New(client Client, cfg Config) *Fetcher {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1000
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = 50 * time.Millisecond
	}
	return &Fetcher{client: client, cfg: cfg}
}

// Run performs one full collection. It starts with a single-item probe
// so that a blocked or dead upstream fails fast with one clear log line
// instead of a thousand.
func (f *Fetcher) Run(ctx context.Context) Result {
	start := time.Now()

	if !f.cfg.SkipProbe {
		if _, err := f.client.ListDrugs(ctx, 1, 1); err != nil {
			state := classify(err)
			log.Error().Err(err).Str("state", string(state)).
				Msg("connectivity probe failed, skipping collection")
			return Result{State: state}
		}
	}

	var (
		drugs   []models.Drug
		dropped int
	)

	page := 1
	for ; page <= f.cfg.MaxPages; page++ {
		resp, err := f.client.ListDrugs(ctx, page, f.cfg.PageSize)
		if err != nil {
			state := classify(err)
			log.Error().Err(err).Int("page", page).Str("state", string(state)).
				Msg("page fetch failed, ending collection")
			return f.result(drugs, state, page-1, dropped, start)
		}

		items := resp.Body.Items
		if len(items) == 0 {
			log.Info().Int("page", page).Msg("empty page, collection complete")
			return f.result(drugs, StateExhausted, page-1, dropped, start)
		}

		for _, item := range items {
			drug, ok := buildItem(item)
			if !ok {
				dropped++
				continue
			}
			drugs = append(drugs, drug)
		}

		if page%10 == 0 {
			log.Info().Int("page", page).Int("total", len(drugs)).Msg("collection progress")
		}

		select {
		case <-time.After(f.cfg.PageDelay):
		case <-ctx.Done():
			log.Warn().Int("page", page).Msg("collection cancelled")
			return f.result(drugs, StateAbortedTimeout, page, dropped, start)
		}
	}

	log.Warn().Int("max_pages", f.cfg.MaxPages).
		Msg("safety page bound reached, upstream may be misbehaving")
	return f.result(drugs, StateAbortedSafetyLimit, page-1, dropped, start)
}

func (f *Fetcher) result(drugs []models.Drug, state State, pages, dropped int, start time.Time) Result {
	log.Info().
		Str("state", string(state)).
		Int("pages", pages).
		Int("collected", len(drugs)).
		Int("dropped", dropped).
		Dur("duration", time.Since(start)).
		Msg("collection finished")
	return Result{Drugs: drugs, State: state, Pages: pages, Dropped: dropped}
}

// buildItem validates and normalizes one upstream item. Name, price and
// product code are all required; the remaining fields fall back to
// sentinels. The ingredient code falls back to a product-code prefix,
// unlike the spreadsheet path.
func buildItem(item hira.DrugItem) (models.Drug, bool) {
	name := normalize.Text(item.ItemName)
	rawPrice := normalize.Text(string(item.MaxAmount))
	code := normalize.Text(string(item.MedicineCode))
	if name == "" || rawPrice == "" || code == "" {
		return models.Drug{}, false
	}

	price, err := normalize.PriceStrict(rawPrice)
	if err != nil {
		return models.Drug{}, false
	}

	ingCode := normalize.Text(string(item.MainIngredientCode))
	if ingCode == "" {
		ingCode = normalize.IngredientFallback(code)
	}

	ingName := normalize.Text(item.MainIngredientName)
	if ingName == "" {
		ingName = normalize.MixedIngredientName
	}

	manufacturer := normalize.Text(item.CompanyName)
	if manufacturer == "" {
		manufacturer = normalize.UnknownManufacturer
	}

	category := normalize.Text(string(item.DivisionCode))
	if category == "" {
		category = normalize.DefaultCategory
	}

	return models.Drug{
		ID:             code,
		Name:           name,
		IngredientCode: ingCode,
		IngredientName: ingName,
		Price:          price,
		Manufacturer:   manufacturer,
		Category:       category,
		Image:          nil,
	}, true
}

// classify maps a page-fetch error onto a terminal state.
func classify(err error) State {
	var (
		statusErr *hira.StatusError
		parseErr  *hira.ParseError
		logicErr  *hira.LogicError
	)
	switch {
	case errors.As(err, &statusErr):
		return StateAbortedHTTPError
	case errors.As(err, &parseErr):
		return StateAbortedParseError
	case errors.As(err, &logicErr):
		return StateAbortedLogicError
	case isTimeout(err):
		return StateAbortedTimeout
	default:
		return StateAbortedHTTPError
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
