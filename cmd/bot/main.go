package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
	"github.com/matchatealeaf/albion-discord-bot/internal/bot"
	"github.com/matchatealeaf/albion-discord-bot/internal/catalog"
	"github.com/matchatealeaf/albion-discord-bot/internal/config"
	"github.com/matchatealeaf/albion-discord-bot/internal/market"
	"github.com/matchatealeaf/albion-discord-bot/internal/store"
	"github.com/matchatealeaf/albion-discord-bot/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/bot.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting bot",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"data_url", cfg.API.DataURL,
		"locations", len(cfg.Market.Locations),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load item catalog; nothing works without it
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Error("failed to load item catalog", "error", err, "path", cfg.Catalog.Path)
		os.Exit(1)
	}
	logger.Info("item catalog loaded", "entries", cat.Len())

	// Create API client
	apiClient := api.NewClient(
		cfg.API.DataURL,
		cfg.API.GameinfoURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
	)

	// Market pipeline: fetcher feeding the aggregator
	fetcher := market.NewFetcher(market.FetcherConfig{
		Concurrency: cfg.Market.FetchConcurrency,
		Timeout:     cfg.Market.FetchTimeout,
	}, apiClient, logger)
	agg := market.NewAggregator(market.AggregatorConfig{
		Locations:        cfg.Market.Locations,
		OutlierThreshold: cfg.Market.OutlierThreshold,
	}, fetcher, logger)

	// Optional observation store
	var sink bot.ObservationSink
	var recorder *store.Recorder
	if cfg.Store.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Store.Postgres.Host,
			"port", cfg.Store.Postgres.Port,
			"database", cfg.Store.Postgres.Name,
		)
		pool, err := store.Connect(ctx, cfg.Store.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		recorder = store.NewRecorder(store.RecorderConfig{
			BatchSize:     cfg.Store.BatchSize,
			FlushInterval: cfg.Store.FlushInterval,
			BufferSize:    cfg.Store.BufferSize,
		}, pool, logger)
		if err := recorder.Start(ctx); err != nil {
			logger.Error("failed to start recorder", "error", err)
			os.Exit(1)
		}
		sink = recorder
		logger.Info("observation recorder started")
	}

	// Optional order board
	var board *bot.Board
	if cfg.Board.Enabled {
		board = bot.NewBoard(cfg.Board, apiClient, cfg.Market.Locations, logger)
	}

	// Discord front end
	b, err := bot.New(*cfg, cat, apiClient, agg, sink, board, logger)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}
	if err := b.Start(ctx); err != nil {
		logger.Error("failed to start bot", "error", err)
		os.Exit(1)
	}

	var refresher *bot.Refresher
	if board != nil {
		refresher = bot.NewRefresher(board, cfg.Board.RefreshInterval, logger)
		if err := refresher.Start(ctx); err != nil {
			logger.Error("failed to start board refresher", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("bot running")

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if refresher != nil {
		if err := refresher.Stop(shutdownCtx); err != nil {
			logger.Error("board refresher shutdown error", "error", err)
		}
	}
	if err := b.Stop(shutdownCtx); err != nil {
		logger.Error("bot shutdown error", "error", err)
	}
	if recorder != nil {
		if err := recorder.Stop(shutdownCtx); err != nil {
			logger.Error("recorder shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
