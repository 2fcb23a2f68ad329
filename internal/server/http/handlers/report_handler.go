package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/snackshop/internal/server/http/dto"
	"github.com/polkiloo/snackshop/internal/usecase"
)

// ReportHandler exposes sales analytics for admins.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name + " date, want YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// Stats handles GET /api/reports/stats.
func (h *ReportHandler) Stats(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	stats, err := h.facade.SalesDashboard(c.Request.Context(), from, to)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(stats))
}

func toDashboardResponse(s *usecase.DashboardStats) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Overall: dto.SummaryResponse{
			TotalOrders:       s.Overall.TotalOrders,
			TotalRevenue:      s.Overall.TotalRevenue,
			TotalProfit:       s.Overall.TotalProfit,
			TotalItems:        s.Overall.TotalItems,
			AverageOrderValue: s.Overall.AverageOrderValue,
		},
	}
	for _, d := range s.Daily {
		resp.Daily = append(resp.Daily, dto.DailySalesResponse{
			Day:     d.Day,
			Orders:  d.Orders,
			Revenue: d.Revenue,
			Profit:  d.Profit,
		})
	}
	for _, m := range s.Monthly {
		resp.Monthly = append(resp.Monthly, dto.MonthlyRevenueResponse{
			Month:   m.Month,
			Orders:  m.Orders,
			Revenue: m.Revenue,
			Profit:  m.Profit,
		})
	}
	for _, t := range s.TopCustomers {
		resp.TopCustomers = append(resp.TopCustomers, dto.TopCustomerResponse{
			UserID: t.UserID,
			Name:   t.Name,
			Orders: t.Orders,
			Spent:  t.Spent,
			Items:  t.Items,
		})
	}
	for _, p := range s.ItemPerformance {
		resp.ItemPerformance = append(resp.ItemPerformance, dto.ItemPerformanceResponse{
			ItemID:       p.ItemID,
			Name:         p.Name,
			UnitsSold:    p.UnitsSold,
			Revenue:      p.Revenue,
			Orders:       p.Orders,
			AveragePrice: p.AveragePrice,
		})
	}
	for _, cat := range s.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryRollupResponse{
			Category:     string(cat.Category),
			Items:        cat.Items,
			UnitsSold:    cat.UnitsSold,
			Revenue:      cat.Revenue,
			AveragePrice: cat.AveragePrice,
		})
	}
	for _, r := range s.Recent {
		resp.Recent = append(resp.Recent, dto.RecentSaleResponse{
			Number:       r.Number,
			CustomerName: r.CustomerName,
			TotalAmount:  r.TotalAmount,
			Status:       string(r.Status),
			CreatedAt:    r.CreatedAt,
		})
	}
	return resp
}
