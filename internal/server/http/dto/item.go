package dto

import "time"

// ItemRequest describes the admin payload for creating or updating an item.
type ItemRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	Quantity      int     `json:"quantity"`
	LowStockAlert int     `json:"low_stock_alert"`
	ImageURL      string  `json:"image_url"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// StockRequest describes a restock operation.
type StockRequest struct {
	Quantity int `json:"quantity"`
}

// ItemResponse is the public view of a catalog item.
type ItemResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	CostPrice     float64   `json:"cost_price,omitempty"`
	Quantity      int       `json:"quantity"`
	LowStockAlert int       `json:"low_stock_alert"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	StockStatus   string    `json:"stock_status"`
	Sales         int       `json:"sales"`
	Revenue       float64   `json:"revenue"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
