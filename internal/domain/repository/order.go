package repository

import (
	"context"

	"github.com/polkiloo/snackshop/internal/domain/model"
)

// RequestedLine is a client-supplied (item, quantity) pair. Prices and names
// are never taken from the client; the storage layer snapshots them from the
// catalog inside the placement transaction.
type RequestedLine struct {
	ItemID   int64
	Quantity int
}

// OrderDraft carries everything needed to place an order.
type OrderDraft struct {
	Number        string
	CustomerID    int64
	CustomerName  string
	Lines         []RequestedLine
	PaymentMethod model.PaymentMethod
	Discount      model.Discount
	Tax           model.Tax
	Notes         string
	Location      model.Location
	CreatedBy     int64
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	CustomerID *int64
	Status     *model.OrderStatus
	Limit      int
	Offset     int
}

// OrderRepository describes persistence operations with orders. Create,
// UpdateStatus and Refund each run as a single storage transaction covering
// the order row, the affected item rows and the customer aggregates.
type OrderRepository interface {
	Create(ctx context.Context, draft OrderDraft) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, reason string) (*model.Order, error)
	Refund(ctx context.Context, orderID int64, amount float64, reason string) (*model.Order, error)
}
