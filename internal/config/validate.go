package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *BotConfig) Validate() error {
	if c.Discord.Token == "" {
		return errors.New("discord.token is required")
	}
	if c.Catalog.Path == "" {
		return errors.New("catalog.path is required")
	}

	if len(c.Market.Locations) == 0 {
		return errors.New("market.locations must name at least one location")
	}
	if c.Market.HistoryDays < 1 {
		return errors.New("market.history_days must be >= 1")
	}
	if c.Market.OutlierThreshold <= 0 {
		return errors.New("market.outlier_threshold must be > 0")
	}
	if c.Market.FetchConcurrency < 1 {
		return errors.New("market.fetch_concurrency must be >= 1")
	}

	if c.Store.Enabled {
		if err := c.Store.Postgres.validate("store.postgres"); err != nil {
			return err
		}
		if c.Store.BatchSize < 1 {
			return errors.New("store.batch_size must be >= 1")
		}
		if c.Store.BufferSize < 1 {
			return errors.New("store.buffer_size must be >= 1")
		}
	}

	if c.Board.Enabled {
		if c.Board.WorkbookPath == "" {
			return errors.New("board.workbook_path is required when board.enabled")
		}
		if c.Board.ChannelID == "" {
			return errors.New("board.channel_id is required when board.enabled")
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
