package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
	"github.com/polkiloo/snackshop/internal/usecase"
)

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	ItemsFn      func(context.Context, repository.ItemFilter) ([]model.Item, error)
	ItemFn       func(context.Context, int64) (*model.Item, error)
	CreateFn     func(context.Context, *model.Item) (*model.Item, error)
	UpdateFn     func(context.Context, *model.Item) (*model.Item, error)
	DeactivateFn func(context.Context, int64) error
	RestockFn    func(context.Context, int64, int) (*model.Item, error)
	LowStockFn   func(context.Context, int) ([]model.Item, error)
}

func (s CatalogFacadeStub) Items(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, filter)
	}
	return []model.Item{{ID: 1, Name: "chips", Category: model.CategoryChips, Price: 10, IsActive: true}}, nil
}

func (s CatalogFacadeStub) Item(ctx context.Context, id int64) (*model.Item, error) {
	if s.ItemFn != nil {
		return s.ItemFn(ctx, id)
	}
	return &model.Item{ID: id, Name: "chips", Category: model.CategoryChips, Price: 10, IsActive: true}, nil
}

func (s CatalogFacadeStub) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, item)
	}
	out := *item
	out.ID = 1
	return &out, nil
}

func (s CatalogFacadeStub) UpdateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, item)
	}
	return item, nil
}

func (s CatalogFacadeStub) DeactivateItem(ctx context.Context, id int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, id)
	}
	return nil
}

func (s CatalogFacadeStub) RestockItem(ctx context.Context, id int64, quantity int) (*model.Item, error) {
	if s.RestockFn != nil {
		return s.RestockFn(ctx, id, quantity)
	}
	return &model.Item{ID: id, Quantity: quantity, IsActive: true}, nil
}

func (s CatalogFacadeStub) LowStockItems(ctx context.Context, limit int) ([]model.Item, error) {
	if s.LowStockFn != nil {
		return s.LowStockFn(ctx, limit)
	}
	return nil, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn     func(context.Context, usecase.PlaceRequest) (*model.Order, error)
	OrderFn     func(context.Context, int64) (*model.Order, error)
	OrdersFn    func(context.Context, repository.OrderFilter) ([]model.Order, error)
	SetStatusFn func(context.Context, int64, model.OrderStatus, string) (*model.Order, error)
	RefundFn    func(context.Context, int64, float64, string) (*model.Order, error)
}

func (s OrderFacadeStub) PlaceOrder(ctx context.Context, req usecase.PlaceRequest) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, req)
	}
	return &model.Order{ID: 1, Number: "ORD-1-AAAAA", CustomerID: req.CustomerID, Status: model.OrderStatusConfirmed}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, CustomerID: 1}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return []model.Order{{ID: 1, Number: "ORD-1-AAAAA"}}, nil
}

func (s OrderFacadeStub) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus, reason string) (*model.Order, error) {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status, reason)
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s OrderFacadeStub) RefundOrder(ctx context.Context, id int64, amount float64, reason string) (*model.Order, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, id, amount, reason)
	}
	return &model.Order{ID: id, RefundAmount: amount, PaymentStatus: model.PaymentStatusRefunded}, nil
}

// ReportFacadeStub serves canned dashboard data.
type ReportFacadeStub struct {
	DashboardFn func(context.Context, *time.Time, *time.Time) (*usecase.DashboardStats, error)
}

func (s ReportFacadeStub) SalesDashboard(ctx context.Context, from, to *time.Time) (*usecase.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, from, to)
	}
	return &usecase.DashboardStats{}, nil
}

// ShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type ShopFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	ReportFacadeStub
}

// WorkerFacadeStub mimics stock monitor interactions with the catalog.
type WorkerFacadeStub struct {
	Batches        [][]model.Item
	LowStockFn     func(context.Context, int) ([]model.Item, error)
	mu             sync.Mutex
	batchCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// LowStockItems returns batches from the configured queue.
func (s *WorkerFacadeStub) LowStockItems(ctx context.Context, limit int) ([]model.Item, error) {
	if s.LowStockFn != nil {
		return s.LowStockFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}
