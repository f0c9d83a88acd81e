package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher periodically refreshes the order board.
type Refresher struct {
	board    *Board
	interval time.Duration
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefresher creates a Refresher for board at the given interval.
func NewRefresher(board *Board, interval time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		board:    board,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the refresh loop.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("board refresher started", "interval", r.interval)
	return nil
}

// Stop gracefully shuts down the refresher.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("board refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Refresh immediately on start.
	r.refresh()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

func (r *Refresher) refresh() {
	if err := r.board.Refresh(r.ctx); err != nil {
		r.logger.Error("board refresh failed", "error", err)
	}
}
