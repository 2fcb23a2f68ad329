package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/polkiloo/snackshop/internal/domain/model"
)

// Summary aggregates non-cancelled orders, optionally within [from, to].
func (r *reportRepository) Summary(ctx context.Context, from, to *time.Time) (*model.SalesSummary, error) {
	query := `SELECT COUNT(*)::INT, COALESCE(SUM(total_amount), 0), COALESCE(SUM(profit), 0),
                     COALESCE(AVG(total_amount), 0)
              FROM orders WHERE status <> 'cancelled'`
	itemsQuery := `SELECT COALESCE(SUM(l.quantity), 0)::INT
                   FROM order_lines l JOIN orders o ON o.id = l.order_id
                   WHERE o.status <> 'cancelled'`
	var args []any
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
		itemsQuery += fmt.Sprintf(" AND o.created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
		itemsQuery += fmt.Sprintf(" AND o.created_at <= $%d", len(args))
	}

	var summary model.SalesSummary
	err := r.storage.pool.QueryRow(ctx, query, args...).
		Scan(&summary.TotalOrders, &summary.TotalRevenue, &summary.TotalProfit, &summary.AverageOrderValue)
	if err != nil {
		return nil, err
	}

	if err := r.storage.pool.QueryRow(ctx, itemsQuery, args...).Scan(&summary.TotalItems); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) Daily(ctx context.Context, days int) ([]model.DailySales, error) {
	const query = `SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*)::INT,
                          SUM(total_amount), SUM(profit)
                   FROM orders
                   WHERE status <> 'cancelled' AND created_at >= NOW() - make_interval(days => $1)
                   GROUP BY day
                   ORDER BY day`
	rows, err := r.storage.pool.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.DailySales
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue, &d.Profit); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) Monthly(ctx context.Context, year int) ([]model.MonthlyRevenue, error) {
	const query = `SELECT EXTRACT(MONTH FROM created_at)::INT AS month, COUNT(*)::INT,
                          SUM(total_amount), SUM(profit)
                   FROM orders
                   WHERE status <> 'cancelled'
                     AND created_at >= make_date($1, 1, 1)
                     AND created_at < make_date($1 + 1, 1, 1)
                   GROUP BY month
                   ORDER BY month`
	rows, err := r.storage.pool.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MonthlyRevenue
	for rows.Next() {
		var m model.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Orders, &m.Revenue, &m.Profit); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) TopCustomers(ctx context.Context, limit int) ([]model.TopCustomer, error) {
	const query = `SELECT o.customer_id, MAX(o.customer_name), COUNT(*)::INT, SUM(o.total_amount),
                          COALESCE(SUM((SELECT SUM(l.quantity) FROM order_lines l WHERE l.order_id = o.id)), 0)::INT
                   FROM orders o
                   WHERE o.status <> 'cancelled'
                   GROUP BY o.customer_id
                   ORDER BY SUM(o.total_amount) DESC
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TopCustomer
	for rows.Next() {
		var c model.TopCustomer
		if err := rows.Scan(&c.UserID, &c.Name, &c.Orders, &c.Spent, &c.Items); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) ItemPerformance(ctx context.Context, limit int) ([]model.ItemPerformance, error) {
	const query = `SELECT l.item_id, MAX(l.item_name), SUM(l.quantity)::INT, SUM(l.line_total),
                          COUNT(DISTINCT l.order_id)::INT, AVG(l.price)
                   FROM order_lines l
                   JOIN orders o ON o.id = l.order_id
                   WHERE o.status <> 'cancelled'
                   GROUP BY l.item_id
                   ORDER BY SUM(l.quantity) DESC
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ItemPerformance
	for rows.Next() {
		var p model.ItemPerformance
		if err := rows.Scan(&p.ItemID, &p.Name, &p.UnitsSold, &p.Revenue, &p.Orders, &p.AveragePrice); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) CategoryRollups(ctx context.Context) ([]model.CategoryRollup, error) {
	const query = `SELECT i.category, COUNT(*)::INT,
                          COALESCE(SUM(s.units), 0)::INT, COALESCE(SUM(s.revenue), 0),
                          COALESCE(AVG(i.price), 0)
                   FROM items i
                   LEFT JOIN (
                       SELECT l.item_id, SUM(l.quantity) AS units, SUM(l.line_total) AS revenue
                       FROM order_lines l
                       JOIN orders o ON o.id = l.order_id
                       WHERE o.status <> 'cancelled'
                       GROUP BY l.item_id
                   ) s ON s.item_id = i.id
                   WHERE i.is_active
                   GROUP BY i.category
                   ORDER BY i.category`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CategoryRollup
	for rows.Next() {
		var c model.CategoryRollup
		if err := rows.Scan(&c.Category, &c.Items, &c.UnitsSold, &c.Revenue, &c.AveragePrice); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) Recent(ctx context.Context, limit int) ([]model.RecentSale, error) {
	const query = `SELECT number, customer_name, total_amount, status, created_at
                   FROM orders
                   WHERE status <> 'cancelled'
                   ORDER BY created_at DESC
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RecentSale
	for rows.Next() {
		var s model.RecentSale
		if err := rows.Scan(&s.Number, &s.CustomerName, &s.TotalAmount, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
