package market

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
)

// ErrUpstreamUnavailable is returned when every day in a requested window
// failed to fetch. A partial window is not an error: thin markets have
// daily gaps and callers are expected to work with whatever came back.
var ErrUpstreamUnavailable = errors.New("market data upstream unavailable")

// HistorySource provides one calendar day of history buckets. *api.Client
// satisfies it.
type HistorySource interface {
	GetHistory(ctx context.Context, itemID, date string, locations []string) ([]api.HistoryBucket, error)
}

// FetcherConfig holds fetch policy.
type FetcherConfig struct {
	Concurrency int           // max in-flight day fetches
	Timeout     time.Duration // per-day fetch timeout
}

// DefaultFetcherConfig returns sensible defaults.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Concurrency: 4,
		Timeout:     10 * time.Second,
	}
}

// Fetcher retrieves raw price observations over a trailing window. It keeps
// no state between calls.
type Fetcher struct {
	cfg    FetcherConfig
	src    HistorySource
	logger *slog.Logger

	// now is stubbed in tests.
	now func() time.Time
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig, src HistorySource, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Fetcher{
		cfg:    cfg,
		src:    src,
		logger: logger,
		now:    time.Now,
	}
}

// FetchWindow fetches all available observations for the item at each named
// location over the trailing window of days ending yesterday (UTC). The
// upstream buckets history by calendar day, so the window costs one call
// per day; days are fetched concurrently up to the configured limit.
//
// Days that fail contribute nothing and the window continues. Only a window
// in which every day failed returns ErrUpstreamUnavailable.
func (f *Fetcher) FetchWindow(ctx context.Context, itemID string, locations []string, days int) (map[string][]PriceObservation, error) {
	requested := make(map[string]bool, len(locations))
	byLocation := make(map[string][]PriceObservation, len(locations))
	for _, loc := range locations {
		requested[loc] = true
		byLocation[loc] = nil
	}

	today := f.now().UTC()
	dates := make([]string, days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, -(i + 1)).Format(api.HistoryDateLayout)
	}

	var (
		mu     sync.Mutex
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	for _, date := range dates {
		date := date
		g.Go(func() error {
			dayCtx, cancel := context.WithTimeout(gctx, f.cfg.Timeout)
			defer cancel()

			buckets, err := f.src.GetHistory(dayCtx, itemID, date, locations)
			if err != nil {
				// A failed or timed-out day degrades to "no data for
				// this day"; the rest of the window proceeds.
				f.logger.Warn("day fetch failed",
					"item", itemID,
					"date", date,
					"err", err,
				)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, b := range buckets {
				if !requested[b.Location] {
					continue
				}
				byLocation[b.Location] = append(byLocation[b.Location], bucketObservations(b)...)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if days > 0 && failed == days {
		return nil, ErrUpstreamUnavailable
	}

	return byLocation, nil
}

// bucketObservations flattens a bucket's parallel arrays into observations,
// correcting the feed's scaled epochs. Mismatched array lengths are
// truncated to the shorter side.
func bucketObservations(b api.HistoryBucket) []PriceObservation {
	n := len(b.Data.Timestamps)
	if len(b.Data.PricesMin) < n {
		n = len(b.Data.PricesMin)
	}

	obs := make([]PriceObservation, n)
	for i := 0; i < n; i++ {
		obs[i] = PriceObservation{
			Location:  b.Location,
			Timestamp: FromEpoch(b.Data.Timestamps[i]),
			Price:     b.Data.PricesMin[i],
		}
	}
	return obs
}
