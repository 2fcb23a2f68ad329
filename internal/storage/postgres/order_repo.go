package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

const orderColumns = `id, number, customer_id, customer_name, total_amount, total_cost, profit,
                      discount_amount, discount_percentage, discount_reason,
                      tax_amount, tax_percentage, payment_method, payment_status, status,
                      refund_amount, notes, loc_room, loc_hostel, loc_building, cancel_reason,
                      created_by, created_at, completed_at, cancelled_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.CustomerName,
		&o.TotalAmount, &o.TotalCost, &o.Profit,
		&o.Discount.Amount, &o.Discount.Percentage, &o.Discount.Reason,
		&o.Tax.Amount, &o.Tax.Percentage, &o.PaymentMethod, &o.PaymentStatus, &o.Status,
		&o.RefundAmount, &o.Notes, &o.Location.Room, &o.Location.Hostel, &o.Location.Building,
		&o.CancelReason, &o.CreatedBy, &o.CreatedAt, &o.CompletedAt, &o.CancelledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadLines(ctx context.Context, q querier, orderID int64) ([]model.OrderLine, error) {
	const query = `SELECT item_id, item_name, quantity, price, cost_price, line_total
                   FROM order_lines WHERE order_id=$1 ORDER BY item_id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.Quantity, &l.Price, &l.CostPrice, &l.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Create places an order as a single transaction: every requested item row is
// locked and validated before any stock is touched, then the order and its
// lines are inserted, stock decremented, and the customer aggregates updated.
// Any failure rolls the whole unit of work back.
func (r *orderRepository) Create(ctx context.Context, draft repository.OrderDraft) (*model.Order, error) {
	order := &model.Order{
		Number:        draft.Number,
		CustomerID:    draft.CustomerID,
		CustomerName:  draft.CustomerName,
		PaymentMethod: draft.PaymentMethod,
		Notes:         draft.Notes,
		Location:      draft.Location,
		CreatedBy:     draft.CreatedBy,
		Status:        model.OrderStatusConfirmed,
	}
	order.PaymentStatus = model.PaymentStatusPending
	if draft.PaymentMethod == model.PaymentMethodCash {
		order.PaymentStatus = model.PaymentStatusCompleted
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Validation phase: snapshot price/name/cost server-side under row
		// locks. Lines arrive sorted by item ID so concurrent orders acquire
		// locks in the same sequence.
		const selectItem = `SELECT name, price, cost_price, quantity FROM items
                            WHERE id=$1 AND is_active FOR UPDATE`
		lines := make([]model.OrderLine, 0, len(draft.Lines))
		for _, requested := range draft.Lines {
			var (
				name      string
				price     float64
				costPrice float64
				available int
			)
			err := tx.QueryRow(ctx, selectItem, requested.ItemID).Scan(&name, &price, &costPrice, &available)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("item %d: %w", requested.ItemID, domainErrors.ErrNotFound)
				}
				return err
			}
			if available < requested.Quantity {
				return &domainErrors.InsufficientStockError{
					ItemID:    requested.ItemID,
					ItemName:  name,
					Available: available,
					Requested: requested.Quantity,
				}
			}
			lines = append(lines, model.OrderLine{
				ItemID:    requested.ItemID,
				ItemName:  name,
				Quantity:  requested.Quantity,
				Price:     price,
				CostPrice: costPrice,
				LineTotal: price * float64(requested.Quantity),
			})
		}

		totals := model.ComputeTotals(lines, draft.Discount, draft.Tax)
		order.Lines = lines
		order.TotalAmount = totals.TotalAmount
		order.TotalCost = totals.TotalCost
		order.Profit = totals.Profit
		order.Discount = totals.Discount
		order.Tax = totals.Tax

		const insertOrder = `INSERT INTO orders (number, customer_id, customer_name,
                                total_amount, total_cost, profit,
                                discount_amount, discount_percentage, discount_reason,
                                tax_amount, tax_percentage, payment_method, payment_status,
                                status, notes, loc_room, loc_hostel, loc_building, created_by)
                             VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
                             RETURNING id, created_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.CustomerID, order.CustomerName,
			order.TotalAmount, order.TotalCost, order.Profit,
			order.Discount.Amount, order.Discount.Percentage, order.Discount.Reason,
			order.Tax.Amount, order.Tax.Percentage, order.PaymentMethod, order.PaymentStatus,
			order.Status, order.Notes, order.Location.Room, order.Location.Hostel,
			order.Location.Building, order.CreatedBy).
			Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrConflict
			}
			return err
		}

		// Mutation phase: runs only after every line has been validated.
		const insertLine = `INSERT INTO order_lines (order_id, item_id, item_name, quantity, price, cost_price, line_total)
                            VALUES ($1,$2,$3,$4,$5,$6,$7)`
		const decrementStock = `UPDATE items
                                SET quantity = quantity - $2,
                                    sales = sales + $2,
                                    revenue = revenue + $3,
                                    updated_at = NOW()
                                WHERE id = $1 AND quantity >= $2`
		for _, line := range order.Lines {
			if _, err := tx.Exec(ctx, insertLine, order.ID, line.ItemID, line.ItemName,
				line.Quantity, line.Price, line.CostPrice, line.LineTotal); err != nil {
				return err
			}
			tag, err := tx.Exec(ctx, decrementStock, line.ItemID, line.Quantity, line.LineTotal)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrConflict
			}
		}

		return r.storage.applyCustomerDeltaTx(ctx, tx, order.CustomerID, 1, order.TotalAmount)
	})
	if err != nil {
		return nil, r.wrapTxError(err, draft.Number)
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if order.Lines, err = loadLines(ctx, r.storage.pool, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conditions []string
		args       []any
	)
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Lines, err = loadLines(ctx, r.storage.pool, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus drives the order state machine. Cancellation restores each
// line's stock, reverses the item counters and the customer aggregates, all
// inside one transaction; a second cancel attempt fails without re-applying
// any of it.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, reason string) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, selectOrder, orderID))
		if err != nil {
			return err
		}

		switch status {
		case model.OrderStatusCancelled:
			if order.Status == model.OrderStatusCancelled {
				return domainErrors.ErrOrderAlreadyCancelled
			}
			if order.Status.Terminal() {
				return domainErrors.ErrInvalidTransition
			}
			if err := r.cancelTx(ctx, tx, order, reason); err != nil {
				return err
			}
		case model.OrderStatusDelivered:
			if order.Status.Terminal() {
				return domainErrors.ErrInvalidTransition
			}
			const deliver = `UPDATE orders SET status=$2, payment_status=$3, completed_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, deliver, order.ID, model.OrderStatusDelivered, model.PaymentStatusCompleted); err != nil {
				return err
			}
		case model.OrderStatusConfirmed:
			if order.Status != model.OrderStatusPending {
				return domainErrors.ErrInvalidTransition
			}
			const confirm = `UPDATE orders SET status=$2 WHERE id=$1`
			if _, err := tx.Exec(ctx, confirm, order.ID, model.OrderStatusConfirmed); err != nil {
				return err
			}
		default:
			return domainErrors.ErrInvalidTransition
		}

		updated, err = scanOrder(tx.QueryRow(ctx, selectOrder, orderID))
		if err != nil {
			return err
		}
		updated.Lines, err = loadLines(ctx, tx, updated.ID)
		return err
	})
	if err != nil {
		return nil, r.wrapTxError(err, fmt.Sprintf("order %d", orderID))
	}
	return updated, nil
}

func (r *orderRepository) cancelTx(ctx context.Context, tx pgx.Tx, order *model.Order, reason string) error {
	lines, err := loadLines(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	const restoreStock = `UPDATE items
                          SET quantity = quantity + $2,
                              sales = GREATEST(0, sales - $2),
                              revenue = GREATEST(0, revenue - $3),
                              updated_at = NOW()
                          WHERE id = $1`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, restoreStock, line.ItemID, line.Quantity, line.LineTotal); err != nil {
			return err
		}
	}

	if err := r.storage.applyCustomerDeltaTx(ctx, tx, order.CustomerID, -1, -order.TotalAmount); err != nil {
		return err
	}

	const cancel = `UPDATE orders SET status=$2, cancelled_at=NOW(), cancel_reason=$3 WHERE id=$1`
	_, err = tx.Exec(ctx, cancel, order.ID, model.OrderStatusCancelled, reason)
	return err
}

// Refund lowers the customer's spent aggregate and marks the payment refunded.
// Stock is untouched: a refund is not a cancellation.
func (r *orderRepository) Refund(ctx context.Context, orderID int64, amount float64, reason string) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, selectOrder, orderID))
		if err != nil {
			return err
		}

		if amount <= 0 || order.RefundAmount+amount > order.TotalAmount {
			return domainErrors.ErrInvalidAmount
		}

		const refund = `UPDATE orders
                        SET payment_status=$2, refund_amount = refund_amount + $3,
                            notes = CASE WHEN notes = '' THEN $4 ELSE notes || ' | ' || $4 END
                        WHERE id=$1`
		note := "Refund: " + reason
		if _, err := tx.Exec(ctx, refund, order.ID, model.PaymentStatusRefunded, amount, note); err != nil {
			return err
		}

		if err := r.storage.applyCustomerDeltaTx(ctx, tx, order.CustomerID, 0, -amount); err != nil {
			return err
		}

		updated, err = scanOrder(tx.QueryRow(ctx, selectOrder, orderID))
		if err != nil {
			return err
		}
		updated.Lines, err = loadLines(ctx, tx, updated.ID)
		return err
	})
	if err != nil {
		return nil, r.wrapTxError(err, fmt.Sprintf("order %d", orderID))
	}
	return updated, nil
}

// wrapTxError turns a failed rollback into a PartialFailureError so callers
// can distinguish "nothing happened" from "state needs reconciliation".
func (r *orderRepository) wrapTxError(err error, ref string) error {
	if errors.Is(err, errRollbackFailed) {
		partial := &domainErrors.PartialFailureError{OrderNumber: ref, Err: err}
		r.storage.logger.Error("order mutation left partial state",
			slog.String("order", ref), slog.String("error", err.Error()))
		return partial
	}
	return err
}
