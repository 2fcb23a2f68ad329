package app

import (
	"context"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
	"github.com/polkiloo/snackshop/internal/usecase"
)

// ShopFacade exposes the application use cases as one surface consumed by the
// HTTP handlers and the stock monitor.
type ShopFacade struct {
	auth    *usecase.AuthUseCase
	catalog *usecase.CatalogUseCase
	orders  *usecase.OrderUseCase
	reports *usecase.ReportUseCase
}

func NewShopFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, reports *usecase.ReportUseCase) *ShopFacade {
	return &ShopFacade{auth: auth, catalog: catalog, orders: orders, reports: reports}
}

func (f *ShopFacade) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, name, password)
}

func (f *ShopFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *ShopFacade) ParseToken(token string) (pkgAuth.TokenClaims, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) Account(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *ShopFacade) ListAccounts(ctx context.Context, role *model.Role) ([]model.User, error) {
	return f.auth.ListUsers(ctx, role)
}

func (f *ShopFacade) SetAccountActive(ctx context.Context, id int64, active bool) error {
	return f.auth.SetActive(ctx, id, active)
}

func (f *ShopFacade) Items(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	return f.catalog.List(ctx, filter)
}

func (f *ShopFacade) Item(ctx context.Context, id int64) (*model.Item, error) {
	return f.catalog.Get(ctx, id)
}

func (f *ShopFacade) CreateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	return f.catalog.Create(ctx, item)
}

func (f *ShopFacade) UpdateItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	return f.catalog.Update(ctx, item)
}

func (f *ShopFacade) DeactivateItem(ctx context.Context, id int64) error {
	return f.catalog.Deactivate(ctx, id)
}

func (f *ShopFacade) RestockItem(ctx context.Context, id int64, quantity int) (*model.Item, error) {
	return f.catalog.AddStock(ctx, id, quantity)
}

func (f *ShopFacade) LowStockItems(ctx context.Context, limit int) ([]model.Item, error) {
	return f.catalog.LowStock(ctx, limit)
}

func (f *ShopFacade) PlaceOrder(ctx context.Context, req usecase.PlaceRequest) (*model.Order, error) {
	return f.orders.Place(ctx, req)
}

func (f *ShopFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *ShopFacade) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *ShopFacade) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus, reason string) (*model.Order, error) {
	return f.orders.SetStatus(ctx, id, status, reason)
}

func (f *ShopFacade) RefundOrder(ctx context.Context, id int64, amount float64, reason string) (*model.Order, error) {
	return f.orders.Refund(ctx, id, amount, reason)
}

func (f *ShopFacade) SalesDashboard(ctx context.Context, from, to *time.Time) (*usecase.DashboardStats, error) {
	return f.reports.Dashboard(ctx, from, to)
}
