package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

const (
	dashboardDailyDays = 30
	dashboardTopN      = 10
)

// DashboardStats bundles the derived statistics shown on the admin dashboard.
type DashboardStats struct {
	Overall         model.SalesSummary
	Daily           []model.DailySales
	Monthly         []model.MonthlyRevenue
	TopCustomers    []model.TopCustomer
	ItemPerformance []model.ItemPerformance
	Categories      []model.CategoryRollup
	Recent          []model.RecentSale
}

// ReportUseCase computes read-only statistics from committed orders.
type ReportUseCase struct {
	reports repository.ReportRepository
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports}
}

// Summary aggregates revenue, profit and item counts over a date range.
func (u *ReportUseCase) Summary(ctx context.Context, from, to *time.Time) (*model.SalesSummary, error) {
	return u.reports.Summary(ctx, from, to)
}

// Dashboard collects every dashboard section in one call. Each section
// tolerates an empty dataset and comes back zeroed, never nil with an error.
func (u *ReportUseCase) Dashboard(ctx context.Context, from, to *time.Time) (*DashboardStats, error) {
	overall, err := u.reports.Summary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Overall: *overall}

	if stats.Daily, err = u.reports.Daily(ctx, dashboardDailyDays); err != nil {
		return nil, err
	}
	if stats.Monthly, err = u.reports.Monthly(ctx, time.Now().Year()); err != nil {
		return nil, err
	}
	if stats.TopCustomers, err = u.reports.TopCustomers(ctx, dashboardTopN); err != nil {
		return nil, err
	}
	if stats.ItemPerformance, err = u.reports.ItemPerformance(ctx, dashboardTopN); err != nil {
		return nil, err
	}
	if stats.Categories, err = u.reports.CategoryRollups(ctx); err != nil {
		return nil, err
	}
	if stats.Recent, err = u.reports.Recent(ctx, dashboardTopN); err != nil {
		return nil, err
	}
	return stats, nil
}
