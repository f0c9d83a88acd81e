package market

import "time"

// PriceObservation is one raw price point for a location. Arrival order is
// the upstream delivery order, which is not chronological.
type PriceObservation struct {
	Location  string
	Timestamp time.Time // UTC
	Price     int64     // silver
}

// Point is one cleaned (timestamp, price) pair.
type Point struct {
	Timestamp time.Time // UTC
	Price     int64     // silver
}

// CleanedSeries is a chronologically sorted, outlier-filtered price series
// for a single location. An empty series means "no data", which is distinct
// from the location not having been requested at all.
type CleanedSeries []Point

// FromEpoch converts an upstream history timestamp to a UTC instant. The
// feed reports epochs scaled up by 1000; the division here is the single
// place that correction happens.
func FromEpoch(raw int64) time.Time {
	return time.Unix(raw/1000, 0).UTC()
}
