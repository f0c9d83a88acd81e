package config

import "time"

// BotConfig is the root configuration for a bot instance.
type BotConfig struct {
	Discord DiscordConfig `yaml:"discord"`
	Catalog CatalogConfig `yaml:"catalog"`
	API     APIConfig     `yaml:"api"`
	Market  MarketConfig  `yaml:"market"`
	Store   StoreConfig   `yaml:"store"`
	Board   BoardConfig   `yaml:"board"`
	Chart   ChartConfig   `yaml:"chart"`
}

// DiscordConfig holds the chat transport settings.
type DiscordConfig struct {
	Token          string   `yaml:"token"`
	Prefixes       []string `yaml:"prefixes"`
	DebugChannelID string   `yaml:"debug_channel_id"`
	WorkChannelIDs []string `yaml:"work_channel_ids"`
	AdminUsers     []string `yaml:"admin_users"`
	OnlyWork       bool     `yaml:"only_work"` // restrict commands to work channels
	Debug          bool     `yaml:"debug"`     // mirror command traffic to the debug channel
}

// CatalogConfig locates the item dataset snapshot.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// APIConfig holds the upstream HTTP API settings.
type APIConfig struct {
	DataURL      string        `yaml:"data_url"`     // Albion Data Project
	GameinfoURL  string        `yaml:"gameinfo_url"` // official gameinfo API
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// MarketConfig holds series aggregation policy.
//
// Locations is the set of markets the bot knows about; adding a city is a
// config change, not a code change.
type MarketConfig struct {
	Locations        []string      `yaml:"locations"`
	HistoryDays      int           `yaml:"history_days"`
	OutlierThreshold float64       `yaml:"outlier_threshold"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
}

// StoreConfig holds the optional price observation store.
type StoreConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Postgres      DBConfig      `yaml:"postgres"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// BoardConfig holds the order board settings.
type BoardConfig struct {
	Enabled         bool          `yaml:"enabled"`
	WorkbookPath    string        `yaml:"workbook_path"`
	ChannelID       string        `yaml:"channel_id"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// ChartConfig holds chart rendering settings.
type ChartConfig struct {
	Dir string `yaml:"dir"` // directory for rendered images; empty = system temp
}
