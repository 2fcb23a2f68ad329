package dto

import "time"

// SummaryResponse aggregates non-cancelled orders over a period.
type SummaryResponse struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalProfit       float64 `json:"total_profit"`
	TotalItems        int     `json:"total_items"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DailySalesResponse is a one-day revenue bucket.
type DailySalesResponse struct {
	Day     time.Time `json:"day"`
	Orders  int       `json:"orders"`
	Revenue float64   `json:"revenue"`
	Profit  float64   `json:"profit"`
}

// MonthlyRevenueResponse is a one-month revenue bucket.
type MonthlyRevenueResponse struct {
	Month   int     `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// TopCustomerResponse ranks a buyer by total spend.
type TopCustomerResponse struct {
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Spent  float64 `json:"spent"`
	Items  int     `json:"items"`
}

// ItemPerformanceResponse ranks a catalog item by units sold.
type ItemPerformanceResponse struct {
	ItemID       int64   `json:"item_id"`
	Name         string  `json:"name"`
	UnitsSold    int     `json:"units_sold"`
	Revenue      float64 `json:"revenue"`
	Orders       int     `json:"orders"`
	AveragePrice float64 `json:"average_price"`
}

// CategoryRollupResponse aggregates sold units per catalog category.
type CategoryRollupResponse struct {
	Category     string  `json:"category"`
	Items        int     `json:"items"`
	UnitsSold    int     `json:"units_sold"`
	Revenue      float64 `json:"revenue"`
	AveragePrice float64 `json:"average_price"`
}

// RecentSaleResponse is a compact order view for the dashboard.
type RecentSaleResponse struct {
	Number       string    `json:"number"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// DashboardResponse bundles every dashboard section.
type DashboardResponse struct {
	Overall         SummaryResponse           `json:"overall"`
	Daily           []DailySalesResponse      `json:"daily"`
	Monthly         []MonthlyRevenueResponse  `json:"monthly"`
	TopCustomers    []TopCustomerResponse     `json:"top_customers"`
	ItemPerformance []ItemPerformanceResponse `json:"item_performance"`
	Categories      []CategoryRollupResponse  `json:"categories"`
	Recent          []RecentSaleResponse      `json:"recent"`
}
