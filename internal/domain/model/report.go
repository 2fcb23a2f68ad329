package model

import "time"

// SalesSummary aggregates non-cancelled orders over a period.
type SalesSummary struct {
	TotalOrders       int
	TotalRevenue      float64
	TotalProfit       float64
	TotalItems        int
	AverageOrderValue float64
}

// DailySales is a one-day revenue bucket.
type DailySales struct {
	Day     time.Time
	Orders  int
	Revenue float64
	Profit  float64
}

// MonthlyRevenue is a one-month revenue bucket within a year.
type MonthlyRevenue struct {
	Month   int
	Orders  int
	Revenue float64
	Profit  float64
}

// TopCustomer ranks a buyer by total spend.
type TopCustomer struct {
	UserID int64
	Name   string
	Orders int
	Spent  float64
	Items  int
}

// ItemPerformance ranks a catalog item by units sold.
type ItemPerformance struct {
	ItemID       int64
	Name         string
	UnitsSold    int
	Revenue      float64
	Orders       int
	AveragePrice float64
}

// CategoryRollup aggregates sold units and revenue per catalog category.
type CategoryRollup struct {
	Category     Category
	Items        int
	UnitsSold    int
	Revenue      float64
	AveragePrice float64
}

// RecentSale is a compact order view for dashboards.
type RecentSale struct {
	Number       string
	CustomerName string
	TotalAmount  float64
	Status       OrderStatus
	CreatedAt    time.Time
}
