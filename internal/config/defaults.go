package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultDataURL          = "https://www.albion-online-data.com"
	DefaultGameinfoURL      = "https://gameinfo.albiononline.com/api/gameinfo"
	DefaultAPITimeout       = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultRetryBackoff     = 1 * time.Second
	DefaultCatalogPath      = "item_data.json"
	DefaultHistoryDays      = 7
	DefaultOutlierThreshold = 10.0
	DefaultFetchConcurrency = 4
	DefaultFetchTimeout     = 10 * time.Second
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultBatchSize        = 500
	DefaultFlushInterval    = 1 * time.Second
	DefaultBufferSize       = 10000
	DefaultRefreshInterval  = 15 * time.Minute
	DefaultPrefix           = "emilie "
)

// DefaultLocations are the royal market cities reported by the data API.
func DefaultLocations() []string {
	return []string{
		"Bridgewatch",
		"Caerleon",
		"Fort Sterling",
		"Lymhurst",
		"Martlock",
		"Thetford",
	}
}

func (c *BotConfig) applyDefaults() {
	// Discord defaults
	if len(c.Discord.Prefixes) == 0 {
		c.Discord.Prefixes = []string{DefaultPrefix}
	}

	// Catalog defaults
	if c.Catalog.Path == "" {
		c.Catalog.Path = DefaultCatalogPath
	}

	// API defaults
	if c.API.DataURL == "" {
		c.API.DataURL = DefaultDataURL
	}
	if c.API.GameinfoURL == "" {
		c.API.GameinfoURL = DefaultGameinfoURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Market defaults
	if len(c.Market.Locations) == 0 {
		c.Market.Locations = DefaultLocations()
	}
	if c.Market.HistoryDays == 0 {
		c.Market.HistoryDays = DefaultHistoryDays
	}
	if c.Market.OutlierThreshold == 0 {
		c.Market.OutlierThreshold = DefaultOutlierThreshold
	}
	if c.Market.FetchConcurrency == 0 {
		c.Market.FetchConcurrency = DefaultFetchConcurrency
	}
	if c.Market.FetchTimeout == 0 {
		c.Market.FetchTimeout = DefaultFetchTimeout
	}

	// Store defaults
	applyDBDefaults(&c.Store.Postgres)
	if c.Store.BatchSize == 0 {
		c.Store.BatchSize = DefaultBatchSize
	}
	if c.Store.FlushInterval == 0 {
		c.Store.FlushInterval = DefaultFlushInterval
	}
	if c.Store.BufferSize == 0 {
		c.Store.BufferSize = DefaultBufferSize
	}

	// Board defaults
	if c.Board.RefreshInterval == 0 {
		c.Board.RefreshInterval = DefaultRefreshInterval
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
