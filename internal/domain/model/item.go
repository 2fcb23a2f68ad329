package model

import "time"

// Category groups catalog items into a fixed set of snack kinds.
type Category string

const (
	CategoryChips     Category = "chips"
	CategoryChocolate Category = "chocolate"
	CategoryCookies   Category = "cookies"
	CategoryCake      Category = "cake"
	CategoryNoodles   Category = "noodles"
	CategoryNamkeen   Category = "namkeen"
	CategoryOther     Category = "other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryChips, CategoryChocolate, CategoryCookies, CategoryCake,
		CategoryNoodles, CategoryNamkeen, CategoryOther:
		return true
	}
	return false
}

// StockStatus is derived from the on-hand quantity and low-stock threshold.
type StockStatus string

const (
	StockStatusOut StockStatus = "out_of_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusIn  StockStatus = "in_stock"
)

// Item describes a purchasable catalog entry with stock tracking.
// Price and CostPrice are authoritative on the server; Sales and Revenue are
// denormalized counters mutated only through order lifecycle transactions.
type Item struct {
	ID            int64
	Name          string
	Description   string
	Category      Category
	Price         float64
	CostPrice     float64
	Quantity      int
	LowStockAlert int
	ImageURL      string
	IsActive      bool
	Sales         int
	Revenue       float64
	CreatedBy     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus classifies the item's current stock level.
func (i Item) StockStatus() StockStatus {
	switch {
	case i.Quantity == 0:
		return StockStatusOut
	case i.Quantity <= i.LowStockAlert:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// IsLowStock reports whether the item is running low but not yet depleted.
func (i Item) IsLowStock() bool {
	return i.Quantity > 0 && i.Quantity <= i.LowStockAlert
}
