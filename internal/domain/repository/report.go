package repository

import (
	"context"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
)

// ReportRepository derives statistics from committed orders and items.
// All operations are pure reads; an empty dataset yields zeroed results.
type ReportRepository interface {
	Summary(ctx context.Context, from, to *time.Time) (*model.SalesSummary, error)
	Daily(ctx context.Context, days int) ([]model.DailySales, error)
	Monthly(ctx context.Context, year int) ([]model.MonthlyRevenue, error)
	TopCustomers(ctx context.Context, limit int) ([]model.TopCustomer, error)
	ItemPerformance(ctx context.Context, limit int) ([]model.ItemPerformance, error)
	CategoryRollups(ctx context.Context) ([]model.CategoryRollup, error)
	Recent(ctx context.Context, limit int) ([]model.RecentSale, error)
}
