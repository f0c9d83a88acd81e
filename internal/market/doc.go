// Package market implements the market-series aggregation engine.
//
// Pipeline per request:
//   - Fetcher pulls a trailing window of daily history buckets, one upstream
//     call per day, tolerating per-day failures
//   - the outlier filter drops pathological price spikes using median
//     absolute deviation
//   - the Aggregator realigns timestamps with the surviving prices and
//     sorts each location's series chronologically
//
// Nothing here holds state between calls; concurrent aggregations are
// independent.
package market
