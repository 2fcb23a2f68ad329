package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
	"github.com/polkiloo/snackshop/internal/usecase"
)

// AuthFacade describes account capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.TokenClaims, error)
	Account(ctx context.Context, id int64) (*model.User, error)
	ListAccounts(ctx context.Context, role *model.Role) ([]model.User, error)
	SetAccountActive(ctx context.Context, id int64, active bool) error
}

// CatalogFacade provides catalog operations exposed via HTTP.
type CatalogFacade interface {
	Items(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error)
	Item(ctx context.Context, id int64) (*model.Item, error)
	CreateItem(ctx context.Context, item *model.Item) (*model.Item, error)
	UpdateItem(ctx context.Context, item *model.Item) (*model.Item, error)
	DeactivateItem(ctx context.Context, id int64) error
	RestockItem(ctx context.Context, id int64, quantity int) (*model.Item, error)
	LowStockItems(ctx context.Context, limit int) ([]model.Item, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, req usecase.PlaceRequest) (*model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus, reason string) (*model.Order, error)
	RefundOrder(ctx context.Context, id int64, amount float64, reason string) (*model.Order, error)
}

// ReportFacade provides dashboard statistics.
type ReportFacade interface {
	SalesDashboard(ctx context.Context, from, to *time.Time) (*usecase.DashboardStats, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	ReportFacade
}
