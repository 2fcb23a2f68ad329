package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether no further status transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus describes payment settlement state.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod enumerates accepted payment channels.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCredit PaymentMethod = "credit"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodCredit:
		return true
	}
	return false
}

// OrderLine is an immutable snapshot of one purchased item. Name, Price and
// CostPrice are captured at order time and survive later catalog edits.
type OrderLine struct {
	ItemID    int64
	ItemName  string
	Quantity  int
	Price     float64
	CostPrice float64
	LineTotal float64
}

// Discount describes an optional reduction applied to the order subtotal.
type Discount struct {
	Amount     float64
	Percentage float64
	Reason     string
}

// Tax describes a percentage charge applied after discount.
type Tax struct {
	Amount     float64
	Percentage float64
}

// Location captures where the order should be delivered.
type Location struct {
	Room     string
	Hostel   string
	Building string
}

// Order is a ledger-style record of a purchase. Lines and totals are fixed at
// creation; only status, payment state and refund fields change afterwards.
type Order struct {
	ID            int64
	Number        string
	CustomerID    int64
	CustomerName  string
	Lines         []OrderLine
	TotalAmount   float64
	TotalCost     float64
	Profit        float64
	Discount      Discount
	Tax           Tax
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        OrderStatus
	RefundAmount  float64
	Notes         string
	Location      Location
	CancelReason  string
	CreatedBy     int64
	CreatedAt     time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// TotalItems returns the number of units across all lines.
func (o Order) TotalItems() int {
	var n int
	for _, line := range o.Lines {
		n += line.Quantity
	}
	return n
}
