package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

// MediaProber checks that an item image URL resolves on the asset host.
// The catalog stores only the URL string.
type MediaProber interface {
	Probe(ctx context.Context, rawURL string) error
}

// CatalogUseCase manages the item catalog: admin CRUD, restocking, listing.
type CatalogUseCase struct {
	items  repository.ItemRepository
	media  MediaProber
	logger *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase. media may be nil to disable
// image probing.
func NewCatalogUseCase(items repository.ItemRepository, media MediaProber, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{items: items, media: media, logger: logger}
}

func (u *CatalogUseCase) validate(item *model.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", domainErrors.ErrInvalidInput)
	}
	if !model.ValidCategory(item.Category) {
		return fmt.Errorf("%w: unknown category %q", domainErrors.ErrInvalidInput, item.Category)
	}
	if item.Price < 0 || item.CostPrice < 0 {
		return fmt.Errorf("%w: price must not be negative", domainErrors.ErrInvalidInput)
	}
	if item.Quantity < 0 || item.LowStockAlert < 0 {
		return fmt.Errorf("%w: quantity must not be negative", domainErrors.ErrInvalidInput)
	}
	return nil
}

// probeImage verifies the image URL when a prober is configured. A failed
// probe does not block the catalog change.
func (u *CatalogUseCase) probeImage(ctx context.Context, url string) {
	if u.media == nil || url == "" {
		return
	}
	if err := u.media.Probe(ctx, url); err != nil {
		u.logger.Warn("item image probe failed", slog.String("url", url), slog.String("error", err.Error()))
	}
}

// Create registers a new catalog item.
func (u *CatalogUseCase) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	if err := u.validate(item); err != nil {
		return nil, err
	}
	u.probeImage(ctx, item.ImageURL)
	return u.items.Create(ctx, item)
}

// Update rewrites the mutable fields of an existing item.
func (u *CatalogUseCase) Update(ctx context.Context, item *model.Item) (*model.Item, error) {
	if err := u.validate(item); err != nil {
		return nil, err
	}
	u.probeImage(ctx, item.ImageURL)
	return u.items.Update(ctx, item)
}

// Deactivate soft-deletes an item; it stays referenced by past orders.
func (u *CatalogUseCase) Deactivate(ctx context.Context, id int64) error {
	return u.items.Deactivate(ctx, id)
}

// AddStock increases the on-hand quantity of an item.
func (u *CatalogUseCase) AddStock(ctx context.Context, id int64, quantity int) (*model.Item, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.items.AddStock(ctx, id, quantity)
}

// Get fetches a single item.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Item, error) {
	return u.items.GetByID(ctx, id)
}

// List returns catalog items matching the filter.
func (u *CatalogUseCase) List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	return u.items.List(ctx, filter)
}

// LowStock returns active items at or below their low-stock threshold.
func (u *CatalogUseCase) LowStock(ctx context.Context, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.items.ListLowStock(ctx, limit)
}
