package repository

import (
	"context"

	"github.com/polkiloo/snackshop/internal/domain/model"
)

// ItemFilter narrows catalog listings.
type ItemFilter struct {
	Category        *model.Category
	IncludeInactive bool
}

// ItemRepository describes persistence operations with catalog items.
// Stock is mutated only here and only through conditional updates; order
// placement and cancellation go through OrderRepository transactions.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) (*model.Item, error)
	Deactivate(ctx context.Context, id int64) error
	AddStock(ctx context.Context, id int64, quantity int) (*model.Item, error)
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	ListLowStock(ctx context.Context, limit int) ([]model.Item, error)
}
