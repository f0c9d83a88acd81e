package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matchatealeaf/albion-discord-bot/internal/market"
)

// batchSender issues batched statements. *pgxpool.Pool satisfies it.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// RecorderConfig holds batching settings.
type RecorderConfig struct {
	BatchSize     int
	FlushInterval time.Duration
	BufferSize    int
}

// DefaultRecorderConfig returns sensible defaults.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		BatchSize:     500,
		FlushInterval: time.Second,
		BufferSize:    10000,
	}
}

// RecorderMetrics counts recorder activity.
type RecorderMetrics struct {
	Inserts   int64
	Conflicts int64
	Flushes   int64
	Dropped   int64
	Errors    int64
}

// observationRow is the table representation of one cleaned point.
type observationRow struct {
	ItemID     string
	Location   string
	ObservedAt int64 // µs since epoch
	Price      int64
}

// Recorder consumes cleaned observations and writes them to the
// price_observations table in batches.
type Recorder struct {
	cfg    RecorderConfig
	logger *slog.Logger

	// Input from command handlers
	input chan observationRow

	// Database
	db batchSender

	// Batching
	batch       []observationRow
	batchMu     sync.Mutex
	flushTicker *time.Ticker

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	metrics RecorderMetrics
}

// NewRecorder creates a Recorder.
func NewRecorder(cfg RecorderConfig, db batchSender, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		cfg:    cfg,
		db:     db,
		logger: logger,
		input:  make(chan observationRow, cfg.BufferSize),
		batch:  make([]observationRow, 0, cfg.BatchSize),
	}
}

// Start begins consuming observations and writing to the database.
func (r *Recorder) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.flushTicker = time.NewTicker(r.cfg.FlushInterval)

	r.wg.Add(1)
	go r.consumeLoop()

	r.wg.Add(1)
	go r.flushLoop()

	r.logger.Info("observation recorder started",
		"batch_size", r.cfg.BatchSize,
		"flush_interval", r.cfg.FlushInterval,
	)
	return nil
}

// Stop gracefully shuts down the recorder.
func (r *Recorder) Stop(ctx context.Context) error {
	r.logger.Info("stopping observation recorder")

	if r.cancel != nil {
		r.cancel()
	}

	if r.flushTicker != nil {
		r.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("observation recorder stopped")
	case <-ctx.Done():
		r.logger.Warn("observation recorder stop timed out")
	}

	// Final flush. The recorder's own context is canceled by now, so the
	// pending batch goes out on the caller's shutdown context.
	r.flush(ctx)

	return nil
}

// Record queues one cleaned series for persistence. It never blocks the
// caller: when the buffer is full the observation is dropped and counted.
func (r *Recorder) Record(itemID, location string, series market.CleanedSeries) {
	for _, p := range series {
		row := observationRow{
			ItemID:     itemID,
			Location:   location,
			ObservedAt: p.Timestamp.UnixMicro(),
			Price:      p.Price,
		}
		select {
		case r.input <- row:
		default:
			r.batchMu.Lock()
			r.metrics.Dropped++
			r.batchMu.Unlock()
		}
	}
}

// Stats returns current metrics.
func (r *Recorder) Stats() RecorderMetrics {
	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	return r.metrics
}

// consumeLoop reads from the input buffer and accumulates batches.
func (r *Recorder) consumeLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case row := <-r.input:
			r.batchMu.Lock()
			r.batch = append(r.batch, row)
			shouldFlush := len(r.batch) >= r.cfg.BatchSize
			r.batchMu.Unlock()

			if shouldFlush {
				r.flush(r.ctx)
			}
		}
	}
}

// flushLoop periodically flushes the batch.
func (r *Recorder) flushLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.flushTicker.C:
			r.flush(r.ctx)
		}
	}
}

// flush writes the current batch to the database.
func (r *Recorder) flush(ctx context.Context) {
	r.batchMu.Lock()
	if len(r.batch) == 0 {
		r.batchMu.Unlock()
		return
	}

	// Take ownership of current batch
	batch := r.batch
	r.batch = make([]observationRow, 0, r.cfg.BatchSize)
	r.batchMu.Unlock()

	start := time.Now()

	conflicts, err := r.batchInsert(ctx, batch)
	if err != nil {
		r.logger.Error("batch insert failed", "error", err, "count", len(batch))
		r.batchMu.Lock()
		r.metrics.Errors++
		r.batchMu.Unlock()
		return
	}

	r.batchMu.Lock()
	r.metrics.Inserts += int64(len(batch) - conflicts)
	r.metrics.Conflicts += int64(conflicts)
	r.metrics.Flushes++
	r.batchMu.Unlock()

	r.logger.Debug("flushed observations",
		"count", len(batch),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
}

// batchInsert inserts rows using pgx.Batch with ON CONFLICT DO NOTHING.
func (r *Recorder) batchInsert(ctx context.Context, rows []observationRow) (conflicts int, err error) {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO price_observations (item_id, location, observed_at, price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (item_id, location, observed_at) DO NOTHING
		`, row.ItemID, row.Location, row.ObservedAt, row.Price)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}
