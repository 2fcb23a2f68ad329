package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

const itemColumns = `id, name, description, category, price, cost_price, quantity,
                     low_stock_alert, image_url, is_active, sales, revenue,
                     created_by, created_at, updated_at`

func scanItemRow(row pgx.Row) (*model.Item, error) {
	var i model.Item
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Price, &i.CostPrice,
		&i.Quantity, &i.LowStockAlert, &i.ImageURL, &i.IsActive, &i.Sales, &i.Revenue,
		&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func collectItems(rows pgx.Rows) ([]model.Item, error) {
	defer rows.Close()
	var result []model.Item
	for rows.Next() {
		var i model.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.Price, &i.CostPrice,
			&i.Quantity, &i.LowStockAlert, &i.ImageURL, &i.IsActive, &i.Sales, &i.Revenue,
			&i.CreatedBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	const query = `INSERT INTO items (name, description, category, price, cost_price, quantity,
                                      low_stock_alert, image_url, created_by)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, is_active, sales, revenue, created_at, updated_at`
	created := *item
	err := r.storage.pool.QueryRow(ctx, query,
		item.Name, item.Description, item.Category, item.Price, item.CostPrice,
		item.Quantity, item.LowStockAlert, item.ImageURL, item.CreatedBy).
		Scan(&created.ID, &created.IsActive, &created.Sales, &created.Revenue,
			&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update rewrites the mutable catalog fields. Stock counters are owned by
// order transactions and AddStock; they are deliberately not touched here.
func (r *itemRepository) Update(ctx context.Context, item *model.Item) (*model.Item, error) {
	const query = `UPDATE items
                   SET name=$2, description=$3, category=$4, price=$5, cost_price=$6,
                       low_stock_alert=$7, image_url=$8, is_active=$9, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + itemColumns
	return scanItemRow(r.storage.pool.QueryRow(ctx, query,
		item.ID, item.Name, item.Description, item.Category, item.Price, item.CostPrice,
		item.LowStockAlert, item.ImageURL, item.IsActive))
}

func (r *itemRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE items SET is_active=FALSE, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *itemRepository) AddStock(ctx context.Context, id int64, quantity int) (*model.Item, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", domainErrors.ErrInvalidAmount)
	}
	const query = `UPDATE items SET quantity = quantity + $2, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + itemColumns
	return scanItemRow(r.storage.pool.QueryRow(ctx, query, id, quantity))
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id=$1`
	return scanItemRow(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *itemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var (
		conditions []string
		args       []any
	)
	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active")
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category=$%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY name"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *itemRepository) ListLowStock(ctx context.Context, limit int) ([]model.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items
                   WHERE is_active AND quantity <= low_stock_alert
                   ORDER BY quantity
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}
