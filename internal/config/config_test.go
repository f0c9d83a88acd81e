package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
discord:
  token: test-token
  prefixes: ["emilie ", "Emilie "]
  debug_channel_id: "123"
  work_channel_ids: ["456", "789"]
  only_work: true
catalog:
  path: testdata/item_data.json
api:
  data_url: https://data.example.com
market:
  history_days: 3
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Discord.Token != "test-token" {
		t.Errorf("Discord.Token = %q, want %q", cfg.Discord.Token, "test-token")
	}
	if len(cfg.Discord.Prefixes) != 2 || cfg.Discord.Prefixes[0] != "emilie " {
		t.Errorf("Discord.Prefixes = %v, want two prefixes starting with %q", cfg.Discord.Prefixes, "emilie ")
	}
	if !cfg.Discord.OnlyWork {
		t.Error("Discord.OnlyWork = false, want true")
	}
	if cfg.API.DataURL != "https://data.example.com" {
		t.Errorf("API.DataURL = %q, want %q", cfg.API.DataURL, "https://data.example.com")
	}
	if cfg.Market.HistoryDays != 3 {
		t.Errorf("Market.HistoryDays = %d, want 3", cfg.Market.HistoryDays)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "secret123")

	yaml := `
discord:
  token: ${TEST_BOT_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Discord.Token != "secret123" {
		t.Errorf("Discord.Token = %q, want %q", cfg.Discord.Token, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
discord:
  token: test-token
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.API.DataURL != DefaultDataURL {
		t.Errorf("API.DataURL = %q, want default %q", cfg.API.DataURL, DefaultDataURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want default %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.Market.HistoryDays != DefaultHistoryDays {
		t.Errorf("Market.HistoryDays = %d, want default %d", cfg.Market.HistoryDays, DefaultHistoryDays)
	}
	if cfg.Market.OutlierThreshold != DefaultOutlierThreshold {
		t.Errorf("Market.OutlierThreshold = %v, want default %v", cfg.Market.OutlierThreshold, DefaultOutlierThreshold)
	}
	if len(cfg.Market.Locations) != 6 {
		t.Errorf("Market.Locations has %d entries, want 6 defaults", len(cfg.Market.Locations))
	}
	if cfg.Store.Postgres.Port != DefaultDBPort {
		t.Errorf("Store.Postgres.Port = %d, want default %d", cfg.Store.Postgres.Port, DefaultDBPort)
	}
	if cfg.Board.RefreshInterval != DefaultRefreshInterval {
		t.Errorf("Board.RefreshInterval = %v, want default %v", cfg.Board.RefreshInterval, DefaultRefreshInterval)
	}
}

func TestValidate(t *testing.T) {
	valid := func() BotConfig {
		return BotConfig{
			Discord: DiscordConfig{Token: "tok"},
			Catalog: CatalogConfig{Path: "item_data.json"},
			Market: MarketConfig{
				Locations:        []string{"Caerleon"},
				HistoryDays:      7,
				OutlierThreshold: 10,
				FetchConcurrency: 4,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*BotConfig)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(*BotConfig) {},
			wantErr: "",
		},
		{
			name:    "missing token",
			mutate:  func(c *BotConfig) { c.Discord.Token = "" },
			wantErr: "discord.token is required",
		},
		{
			name:    "missing catalog path",
			mutate:  func(c *BotConfig) { c.Catalog.Path = "" },
			wantErr: "catalog.path is required",
		},
		{
			name:    "no locations",
			mutate:  func(c *BotConfig) { c.Market.Locations = nil },
			wantErr: "market.locations must name at least one location",
		},
		{
			name:    "zero history days",
			mutate:  func(c *BotConfig) { c.Market.HistoryDays = 0 },
			wantErr: "market.history_days must be >= 1",
		},
		{
			name:    "negative outlier threshold",
			mutate:  func(c *BotConfig) { c.Market.OutlierThreshold = -1 },
			wantErr: "market.outlier_threshold must be > 0",
		},
		{
			name: "store enabled without host",
			mutate: func(c *BotConfig) {
				c.Store.Enabled = true
				c.Store.BatchSize = 100
				c.Store.BufferSize = 100
			},
			wantErr: "store.postgres.host is required",
		},
		{
			name: "store min_conns exceeds max_conns",
			mutate: func(c *BotConfig) {
				c.Store.Enabled = true
				c.Store.BatchSize = 100
				c.Store.BufferSize = 100
				c.Store.Postgres = DBConfig{
					Host: "localhost", Name: "db", User: "user", Password: "pass",
					MaxConns: 5, MinConns: 10,
				}
			},
			wantErr: "store.postgres.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name: "board enabled without workbook",
			mutate: func(c *BotConfig) {
				c.Board.Enabled = true
				c.Board.ChannelID = "123"
			},
			wantErr: "board.workbook_path is required when board.enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

func TestLoadAndValidateAppliesTimingDefaults(t *testing.T) {
	yaml := `
discord:
  token: test-token
store:
  enabled: true
  postgres:
    host: localhost
    name: prices
    user: bot
    password: pw
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
	if cfg.Store.FlushInterval != 1*time.Second {
		t.Errorf("Store.FlushInterval = %v, want %v", cfg.Store.FlushInterval, 1*time.Second)
	}
	if cfg.Store.BatchSize != DefaultBatchSize {
		t.Errorf("Store.BatchSize = %d, want default %d", cfg.Store.BatchSize, DefaultBatchSize)
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
