package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

const maxNotesLength = 500

// PlaceRequest is the engine's input for one checkout.
type PlaceRequest struct {
	CustomerID    int64
	Lines         []repository.RequestedLine
	PaymentMethod model.PaymentMethod
	Discount      model.Discount
	Tax           model.Tax
	Notes         string
	Location      model.Location
	CreatedBy     int64
}

// OrderUseCase encapsulates order lifecycle logic: checkout, the status state
// machine, and refunds.
type OrderUseCase struct {
	orders repository.OrderRepository
	users  repository.UserRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, users repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, users: users}
}

// NewOrderNumber generates a sortable, collision-resistant order identifier.
// Uniqueness is still enforced by the storage layer.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// Place validates the requested cart, then hands a draft to the repository,
// which prices and persists it in one transaction. Client-supplied prices or
// names never reach the draft.
func (u *OrderUseCase) Place(ctx context.Context, req PlaceRequest) (*model.Order, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one line", domainErrors.ErrInvalidInput)
	}
	for _, line := range req.Lines {
		if line.ItemID <= 0 {
			return nil, fmt.Errorf("%w: item id is required", domainErrors.ErrInvalidInput)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", domainErrors.ErrInvalidInput)
		}
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentMethodCash
	}
	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domainErrors.ErrInvalidInput, req.PaymentMethod)
	}
	if req.Discount.Percentage < 0 || req.Discount.Percentage > 100 || req.Discount.Amount < 0 {
		return nil, fmt.Errorf("%w: discount out of range", domainErrors.ErrInvalidInput)
	}
	if req.Tax.Percentage < 0 {
		return nil, fmt.Errorf("%w: tax percentage must not be negative", domainErrors.ErrInvalidInput)
	}
	if len(req.Notes) > maxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", domainErrors.ErrInvalidInput, maxNotesLength)
	}

	customer, err := u.users.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, domainErrors.ErrAccountDisabled
	}

	draft := repository.OrderDraft{
		Number:        NewOrderNumber(),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Lines:         mergeLines(req.Lines),
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Tax:           req.Tax,
		Notes:         strings.TrimSpace(req.Notes),
		Location:      req.Location,
		CreatedBy:     req.CreatedBy,
	}
	return u.orders.Create(ctx, draft)
}

// mergeLines collapses duplicate item references and sorts by item ID so the
// storage layer locks rows in a deterministic order.
func mergeLines(lines []repository.RequestedLine) []repository.RequestedLine {
	byItem := make(map[int64]int, len(lines))
	for _, line := range lines {
		byItem[line.ItemID] += line.Quantity
	}
	merged := make([]repository.RequestedLine, 0, len(byItem))
	for id, qty := range byItem {
		merged = append(merged, repository.RequestedLine{ItemID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ItemID < merged[j].ItemID })
	return merged
}

// Get fetches a single order with its lines.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// List returns orders matching the filter, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return u.orders.List(ctx, filter)
}

// SetStatus drives the order through its state machine.
func (u *OrderUseCase) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus, reason string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrInvalidInput, status)
	}
	if len(reason) > 200 {
		return nil, fmt.Errorf("%w: reason must be at most 200 characters", domainErrors.ErrInvalidInput)
	}
	return u.orders.UpdateStatus(ctx, orderID, status, strings.TrimSpace(reason))
}

// Refund reverses part of the customer's spend without restoring stock.
func (u *OrderUseCase) Refund(ctx context.Context, orderID int64, amount float64, reason string) (*model.Order, error) {
	if amount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: refund reason is required", domainErrors.ErrInvalidInput)
	}
	return u.orders.Refund(ctx, orderID, amount, reason)
}
