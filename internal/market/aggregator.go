package market

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// AggregatorConfig holds aggregation policy.
type AggregatorConfig struct {
	// Locations is the set of known market locations. Requests naming a
	// location outside this set are rejected; extending the set is a
	// config change.
	Locations []string

	// OutlierThreshold is the modified-score cutoff for RejectOutliers.
	OutlierThreshold float64
}

// Aggregator turns raw per-location observations into cleaned, time-ordered
// series ready for summary display or charting.
type Aggregator struct {
	cfg     AggregatorConfig
	fetcher *Fetcher
	known   map[string]bool
	logger  *slog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(cfg AggregatorConfig, fetcher *Fetcher, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OutlierThreshold <= 0 {
		cfg.OutlierThreshold = DefaultOutlierThreshold
	}

	known := make(map[string]bool, len(cfg.Locations))
	for _, loc := range cfg.Locations {
		known[loc] = true
	}

	return &Aggregator{
		cfg:     cfg,
		fetcher: fetcher,
		known:   known,
		logger:  logger,
	}
}

// Locations returns the known location set in configured order.
func (a *Aggregator) Locations() []string {
	return a.cfg.Locations
}

// Aggregate fetches, cleans, and time-orders the item's price series for
// each requested location. Every requested location has an entry in the
// result; locations with nothing left after filtering map to an empty
// series. The window covers days calendar days ending yesterday (UTC).
func (a *Aggregator) Aggregate(ctx context.Context, itemID string, locations []string, days int) (map[string]CleanedSeries, error) {
	for _, loc := range locations {
		if !a.known[loc] {
			return nil, fmt.Errorf("unknown location %q", loc)
		}
	}

	raw, err := a.fetcher.FetchWindow(ctx, itemID, locations, days)
	if err != nil {
		return nil, err
	}

	result := make(map[string]CleanedSeries, len(locations))
	for _, loc := range locations {
		result[loc] = cleanSeries(raw[loc], a.cfg.OutlierThreshold)
	}

	a.logger.Debug("aggregated series",
		"item", itemID,
		"locations", len(locations),
		"days", days,
	)

	return result, nil
}

// cleanSeries filters outliers and sorts the survivors chronologically.
// Upstream delivery order is not chronological, so the sort is mandatory.
func cleanSeries(obs []PriceObservation, threshold float64) CleanedSeries {
	survivors := rejectObservations(obs, threshold)

	series := make(CleanedSeries, len(survivors))
	for i, o := range survivors {
		series[i] = Point{Timestamp: o.Timestamp, Price: o.Price}
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	return series
}
