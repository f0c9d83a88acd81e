package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// HistoryDateLayout is the calendar-date format the charts endpoint expects.
const HistoryDateLayout = "01-02-2006"

// GetCurrentPrices fetches the current order-book summary for an item at the
// given locations. An empty slice means no market data, not an error.
func (c *Client) GetCurrentPrices(ctx context.Context, itemID string, locations []string) ([]CurrentPrice, error) {
	query := url.Values{}
	query.Set("locations", joinLocations(locations))

	var prices []CurrentPrice
	path := c.dataURL + "/api/v2/stats/prices/" + url.PathEscape(itemID)
	if err := c.get(ctx, path, query, &prices); err != nil {
		return nil, fmt.Errorf("get current prices %s: %w", itemID, err)
	}

	return prices, nil
}

// GetHistory fetches one calendar day of history buckets for an item. The
// date must use HistoryDateLayout (an upstream constraint: the service
// buckets history by day).
func (c *Client) GetHistory(ctx context.Context, itemID, date string, locations []string) ([]HistoryBucket, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("locations", joinLocations(locations))

	var buckets []HistoryBucket
	path := c.dataURL + "/api/v1/stats/charts/" + url.PathEscape(itemID)
	if err := c.get(ctx, path, query, &buckets); err != nil {
		return nil, fmt.Errorf("get history %s %s: %w", itemID, date, err)
	}

	return buckets, nil
}

// GetGoldPrices fetches gold price observations from the given date onwards.
func (c *Client) GetGoldPrices(ctx context.Context, date string) ([]GoldPrice, error) {
	query := url.Values{}
	query.Set("date", date)

	var prices []GoldPrice
	path := c.dataURL + "/api/v2/stats/gold"
	if err := c.get(ctx, path, query, &prices); err != nil {
		return nil, fmt.Errorf("get gold prices: %w", err)
	}

	return prices, nil
}

// joinLocations builds the comma-separated locations parameter. The API
// wants location names without spaces ("FortSterling") even though its
// responses spell them with spaces ("Fort Sterling").
func joinLocations(locations []string) string {
	parts := make([]string, len(locations))
	for i, loc := range locations {
		parts[i] = strings.ReplaceAll(loc, " ", "")
	}
	return strings.Join(parts, ",")
}
