package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
)

// CatalogFacade exposes the subset of application functionality required by the monitor.
type CatalogFacade interface {
	LowStockItems(ctx context.Context, limit int) ([]model.Item, error)
}

// StockMonitor periodically scans the catalog for items running low and
// raises structured alerts. It never mutates state and stays out of the
// order placement path.
type StockMonitor struct {
	facade       CatalogFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Item
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStockMonitor constructs the monitor worker pool.
func NewStockMonitor(facade CatalogFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *StockMonitor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &StockMonitor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Item, batchSize*workers),
	}
}

// Start launches background scanning.
func (m *StockMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(runCtx)
	}

	m.wg.Add(1)
	go m.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (m *StockMonitor) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *StockMonitor) dispatch(ctx context.Context) {
	defer m.wg.Done()
	defer close(m.jobs)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.fetchAndDispatch(ctx)
		}
	}
}

func (m *StockMonitor) fetchAndDispatch(ctx context.Context) {
	items, err := m.facade.LowStockItems(ctx, m.batchSize)
	if err != nil {
		m.logger.Error("low stock scan failed", slog.String("error", err.Error()))
		return
	}
	for _, item := range items {
		select {
		case <-ctx.Done():
			return
		case m.jobs <- item:
		}
	}
}

func (m *StockMonitor) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-m.jobs:
			if !ok {
				return
			}
			m.handleItem(item)
		}
	}
}

func (m *StockMonitor) handleItem(item model.Item) {
	switch item.StockStatus() {
	case model.StockStatusOut:
		m.logger.Error("item out of stock",
			slog.Int64("item_id", item.ID),
			slog.String("name", item.Name),
		)
	case model.StockStatusLow:
		m.logger.Warn("item low on stock",
			slog.Int64("item_id", item.ID),
			slog.String("name", item.Name),
			slog.Int("quantity", item.Quantity),
			slog.Int("threshold", item.LowStockAlert),
		)
	}
}
