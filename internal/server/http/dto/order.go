package dto

import "time"

// OrderLineRequest is a client-supplied (item, quantity) pair. Prices are
// resolved server-side.
type OrderLineRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// DiscountPayload mirrors the optional discount on a checkout.
type DiscountPayload struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Reason     string  `json:"reason,omitempty"`
}

// TaxPayload mirrors the optional tax on a checkout.
type TaxPayload struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// LocationPayload carries the delivery location.
type LocationPayload struct {
	Room     string `json:"room,omitempty"`
	Hostel   string `json:"hostel,omitempty"`
	Building string `json:"building,omitempty"`
}

// PlaceOrderRequest describes a checkout payload. CustomerID is honoured only
// for admin callers placing an order on a customer's behalf.
type PlaceOrderRequest struct {
	Items         []OrderLineRequest `json:"items"`
	CustomerID    int64              `json:"customer_id,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Location      LocationPayload    `json:"location,omitempty"`
	Discount      DiscountPayload    `json:"discount,omitempty"`
	Tax           TaxPayload         `json:"tax,omitempty"`
}

// StatusRequest describes an order status transition.
type StatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// RefundRequest describes a refund operation.
type RefundRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// OrderLineResponse is the snapshot view of one purchased line.
type OrderLineResponse struct {
	ItemID    int64   `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Number        string              `json:"number"`
	CustomerID    int64               `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	Lines         []OrderLineResponse `json:"items"`
	TotalAmount   float64             `json:"total_amount"`
	Discount      DiscountPayload     `json:"discount,omitempty"`
	Tax           TaxPayload          `json:"tax,omitempty"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Status        string              `json:"status"`
	RefundAmount  float64             `json:"refund_amount,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Location      LocationPayload     `json:"location,omitempty"`
	CancelReason  string              `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
}

// InsufficientStockResponse details a rejected checkout line.
type InsufficientStockResponse struct {
	Error     string `json:"error"`
	ItemID    int64  `json:"item_id"`
	ItemName  string `json:"item_name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}
