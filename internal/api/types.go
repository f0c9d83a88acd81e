package api

import (
	"fmt"
	"time"
)

// CurrentPrice is one location's order-book summary for an item.
type CurrentPrice struct {
	ItemID           string `json:"item_id"`
	City             string `json:"city"`
	Quality          int    `json:"quality"`
	SellPriceMin     int64  `json:"sell_price_min"`
	SellPriceMinDate string `json:"sell_price_min_date"`
	SellPriceMax     int64  `json:"sell_price_max"`
	SellPriceMaxDate string `json:"sell_price_max_date"`
	BuyPriceMin      int64  `json:"buy_price_min"`
	BuyPriceMinDate  string `json:"buy_price_min_date"`
	BuyPriceMax      int64  `json:"buy_price_max"`
	BuyPriceMaxDate  string `json:"buy_price_max_date"`
}

// HistoryBucket is one location's slice of a single day of history.
type HistoryBucket struct {
	Location string        `json:"location"`
	ItemID   string        `json:"item_id"`
	Quality  int           `json:"quality"`
	Data     HistorySeries `json:"data"`
}

// HistorySeries holds the bucket's parallel arrays. Timestamps arrive in a
// millisecond-scaled epoch representation; see market.FromEpoch for the
// correction.
type HistorySeries struct {
	Timestamps []int64   `json:"timestamps"`
	PricesMin  []int64   `json:"prices_min"`
	PricesMax  []int64   `json:"prices_max"`
	PricesAvg  []float64 `json:"prices_avg"`
	ItemCount  []int64   `json:"item_count"`
}

// GoldPrice is one gold price observation.
type GoldPrice struct {
	Price     int64  `json:"price"`
	Timestamp string `json:"timestamp"`
}

// SearchResponse from the gameinfo search endpoint.
type SearchResponse struct {
	Guilds  []SearchGuild  `json:"guilds"`
	Players []SearchPlayer `json:"players"`
}

// SearchGuild is a guild hit in a search response.
type SearchGuild struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// SearchPlayer is a player hit in a search response.
type SearchPlayer struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Player is a full player record with lifetime fame statistics.
type Player struct {
	ID                 string             `json:"Id"`
	Name               string             `json:"Name"`
	GuildName          string             `json:"GuildName"`
	AllianceName       string             `json:"AllianceName"`
	KillFame           int64              `json:"KillFame"`
	LifetimeStatistics LifetimeStatistics `json:"LifetimeStatistics"`
}

// LifetimeStatistics is the fame breakdown of a player.
type LifetimeStatistics struct {
	PvE       FameTotal      `json:"PvE"`
	Gathering GatheringStats `json:"Gathering"`
	Crafting  FameTotal      `json:"Crafting"`
	Timestamp string         `json:"Timestamp"`
}

// FameTotal wraps a single fame counter.
type FameTotal struct {
	Total int64 `json:"Total"`
}

// GatheringStats breaks gathering fame down by resource.
type GatheringStats struct {
	All   FameTotal `json:"All"`
	Fiber FameTotal `json:"Fiber"`
	Hide  FameTotal `json:"Hide"`
	Ore   FameTotal `json:"Ore"`
	Rock  FameTotal `json:"Rock"`
	Wood  FameTotal `json:"Wood"`
}

// Guild is a full guild record.
type Guild struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	AllianceID  string `json:"AllianceId"`
	FounderName string `json:"FounderName"`
	Founded     string `json:"Founded"`
	KillFame    int64  `json:"killFame"`
	MemberCount int    `json:"MemberCount"`
}

// GuildMember is one member in a guild roster.
type GuildMember struct {
	Name               string             `json:"Name"`
	KillFame           int64              `json:"KillFame"`
	LifetimeStatistics LifetimeStatistics `json:"LifetimeStatistics"`
}

// Alliance is a full alliance record.
type Alliance struct {
	ID   string `json:"AllianceId"`
	Tag  string `json:"AllianceTag"`
	Name string `json:"AllianceName"`
}

// Timestamp layouts used by the upstream APIs.
const (
	// priceTimeLayout is used by the data API (no zone, implicitly UTC).
	priceTimeLayout = "2006-01-02T15:04:05"
)

// ParsePriceTime parses a data-API timestamp as UTC.
func ParsePriceTime(s string) (time.Time, error) {
	t, err := time.Parse(priceTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse price timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ParseGameinfoTime parses a gameinfo timestamp (RFC 3339 with fractional
// seconds).
func ParseGameinfoTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse gameinfo timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
