package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

var orderCols = []string{"id", "number", "customer_id", "customer_name", "total_amount", "total_cost", "profit",
	"discount_amount", "discount_percentage", "discount_reason", "tax_amount", "tax_percentage",
	"payment_method", "payment_status", "status", "refund_amount", "notes", "loc_room", "loc_hostel",
	"loc_building", "cancel_reason", "created_by", "created_at", "completed_at", "cancelled_at"}

var lineCols = []string{"item_id", "item_name", "quantity", "price", "cost_price", "line_total"}

func orderRow(id int64, status model.OrderStatus, total, refunded float64) *pgxmockv3.Rows {
	return pgxmockv3.NewRows(orderCols).AddRow(
		id, "ORD-20260831-ABCDE", int64(7), "Dana",
		total, 30.0, 20.0, 0.0, 0.0, "", 0.0, 0.0,
		model.PaymentMethodCash, model.PaymentStatusCompleted, status,
		refunded, "", "", "", "", "", int64(0), time.Now(), nil, nil)
}

func lineRows() *pgxmockv3.Rows {
	return pgxmockv3.NewRows(lineCols).AddRow(int64(3), "chips", 2, 20.0, 12.0, 40.0)
}

// draftInsertArgs mirrors the argument list of the order insert for testDraft:
// chips 2x20 plus cake 1x10, no discount or tax, cash completes immediately.
func draftInsertArgs() []any {
	return []any{"ORD-20260831-ABCDE", int64(7), "Dana", 50.0, 30.0, 20.0,
		0.0, 0.0, "", 0.0, 0.0, model.PaymentMethodCash, model.PaymentStatusCompleted,
		model.OrderStatusConfirmed, "", "", "", "", int64(0)}
}

func testDraft() repository.OrderDraft {
	return repository.OrderDraft{
		Number:        "ORD-20260831-ABCDE",
		CustomerID:    7,
		CustomerName:  "Dana",
		PaymentMethod: model.PaymentMethodCash,
		Lines: []repository.RequestedLine{
			{ItemID: 3, Quantity: 2},
			{ItemID: 9, Quantity: 1},
		},
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	now := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(3)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("chips", 20.0, 12.0, 10))
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(9)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("cake", 10.0, 6.0, 4))
		mock.ExpectQuery("INSERT INTO orders").WithArgs(draftInsertArgs()...).WillReturnRows(
			pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))
		mock.ExpectExec("INSERT INTO order_lines").WithArgs(int64(1), int64(3), "chips", 2, 20.0, 12.0, 40.0).
			WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
		mock.ExpectExec("UPDATE items").WithArgs(int64(3), 2, 40.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO order_lines").WithArgs(int64(1), int64(9), "cake", 1, 10.0, 6.0, 10.0).
			WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
		mock.ExpectExec("UPDATE items").WithArgs(int64(9), 1, 10.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE users").WithArgs(int64(7), 1, 50.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		order, err := repo.Create(context.Background(), testDraft())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.ID != 1 || order.Status != model.OrderStatusConfirmed {
			t.Fatalf("unexpected order: %+v", order)
		}
		if order.PaymentStatus != model.PaymentStatusCompleted {
			t.Fatalf("expected cash payment to complete immediately, got %s", order.PaymentStatus)
		}
		if order.TotalAmount != 50 || order.TotalCost != 30 || order.Profit != 20 {
			t.Fatalf("unexpected totals: %+v", order)
		}
		if len(order.Lines) != 2 || order.Lines[0].ItemName != "chips" || order.Lines[1].LineTotal != 10 {
			t.Fatalf("unexpected lines: %+v", order.Lines)
		}
	})

	t.Run("insufficient stock rejects whole order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(3)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("chips", 20.0, 12.0, 1))
		mock.ExpectRollback()

		_, err := repo.Create(context.Background(), testDraft())
		var stockErr *domainErrors.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected insufficient stock error, got %v", err)
		}
		if stockErr.ItemID != 3 || stockErr.Available != 1 || stockErr.Requested != 2 {
			t.Fatalf("unexpected error detail: %+v", stockErr)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), testDraft()); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("duplicate number", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(3)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("chips", 20.0, 12.0, 10))
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(9)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("cake", 10.0, 6.0, 4))
		mock.ExpectQuery("INSERT INTO orders").WithArgs(draftInsertArgs()...).WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), testDraft()); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("stock drained by concurrent order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(3)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("chips", 20.0, 12.0, 10))
		mock.ExpectQuery("SELECT name, price, cost_price, quantity FROM items").WithArgs(int64(9)).WillReturnRows(
			pgxmockv3.NewRows([]string{"name", "price", "cost_price", "quantity"}).AddRow("cake", 10.0, 6.0, 4))
		mock.ExpectQuery("INSERT INTO orders").WithArgs(draftInsertArgs()...).WillReturnRows(
			pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(2), now))
		mock.ExpectExec("INSERT INTO order_lines").WithArgs(int64(2), int64(3), "chips", 2, 20.0, 12.0, 40.0).
			WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
		mock.ExpectExec("UPDATE items").WithArgs(int64(3), 2, 40.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		if _, err := repo.Create(context.Background(), testDraft()); !errors.Is(err, domainErrors.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryGetAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusConfirmed, 50, 0))
	mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
	order, err := repo.GetByID(context.Background(), 1)
	if err != nil || order.ID != 1 || len(order.Lines) != 1 {
		t.Fatalf("unexpected order: %+v err=%v", order, err)
	}

	mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnRows(orderRow(1, model.OrderStatusConfirmed, 50, 0))
	mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
	orders, err := repo.List(context.Background(), repository.OrderFilter{})
	if err != nil || len(orders) != 1 || len(orders[0].Lines) != 1 {
		t.Fatalf("unexpected result: %v err=%v", orders, err)
	}

	customerID := int64(7)
	status := model.OrderStatusConfirmed
	mock.ExpectQuery("FROM orders WHERE customer_id=").WithArgs(customerID, status, 10).WillReturnRows(
		orderRow(1, model.OrderStatusConfirmed, 50, 0))
	mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
	orders, err = repo.List(context.Background(), repository.OrderFilter{CustomerID: &customerID, Status: &status, Limit: 10})
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected filtered result: %v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnRows(pgxmockv3.NewRows(orderCols))
	orders, err = repo.List(context.Background(), repository.OrderFilter{})
	if err != nil || len(orders) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", orders, err)
	}

	mock.ExpectQuery("FROM orders ORDER BY created_at DESC").WillReturnError(errors.New("query"))
	if _, err := repo.List(context.Background(), repository.OrderFilter{}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	t.Run("deliver", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusConfirmed, 50, 0))
		mock.ExpectExec("UPDATE orders SET status=").WithArgs(int64(1), model.OrderStatusDelivered, model.PaymentStatusCompleted).
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusDelivered, 50, 0))
		mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
		mock.ExpectCommit()

		order, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusDelivered, "")
		if err != nil || order.Status != model.OrderStatusDelivered {
			t.Fatalf("unexpected result: %+v err=%v", order, err)
		}
	})

	t.Run("cancel restores stock and aggregates", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusConfirmed, 50, 0))
		mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
		mock.ExpectExec("UPDATE items").WithArgs(int64(3), 2, 40.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE users").WithArgs(int64(7), -1, -50.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE orders SET status=").WithArgs(int64(1), model.OrderStatusCancelled, "out of delivery range").
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusCancelled, 50, 0))
		mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
		mock.ExpectCommit()

		order, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusCancelled, "out of delivery range")
		if err != nil || order.Status != model.OrderStatusCancelled {
			t.Fatalf("unexpected result: %+v err=%v", order, err)
		}
	})

	t.Run("second cancel fails without reapplying", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusCancelled, 50, 0))
		mock.ExpectRollback()

		if _, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusCancelled, "again"); !errors.Is(err, domainErrors.ErrOrderAlreadyCancelled) {
			t.Fatalf("expected already cancelled, got %v", err)
		}
	})

	t.Run("cancel of delivered order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusDelivered, 50, 0))
		mock.ExpectRollback()

		if _, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusCancelled, "late"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Fatalf("expected invalid transition, got %v", err)
		}
	})

	t.Run("confirm requires pending", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusConfirmed, 50, 0))
		mock.ExpectRollback()

		if _, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusConfirmed, ""); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Fatalf("expected invalid transition, got %v", err)
		}
	})

	t.Run("unsupported target status", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusConfirmed, 50, 0))
		mock.ExpectRollback()

		if _, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusPending, ""); !errors.Is(err, domainErrors.ErrInvalidTransition) {
			t.Fatalf("expected invalid transition, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		if _, err := repo.UpdateStatus(context.Background(), 99, model.OrderStatusDelivered, ""); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("failed rollback surfaces partial failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnError(errors.New("boom"))
		mock.ExpectRollback().WillReturnError(errors.New("rollback boom"))

		_, err := repo.UpdateStatus(context.Background(), 1, model.OrderStatusDelivered, "")
		var partial *domainErrors.PartialFailureError
		if !errors.As(err, &partial) {
			t.Fatalf("expected partial failure error, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestOrderRepositoryRefund(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &orderRepository{storage: storage}

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusDelivered, 50, 0))
		mock.ExpectExec("UPDATE orders").WithArgs(int64(1), model.PaymentStatusRefunded, 20.0, "Refund: damaged item").
			WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectExec("UPDATE users").WithArgs(int64(7), 0, -20.0).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusDelivered, 50, 20))
		mock.ExpectQuery("FROM order_lines WHERE order_id=").WithArgs(int64(1)).WillReturnRows(lineRows())
		mock.ExpectCommit()

		order, err := repo.Refund(context.Background(), 1, 20, "damaged item")
		if err != nil || order.RefundAmount != 20 {
			t.Fatalf("unexpected result: %+v err=%v", order, err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusDelivered, 50, 0))
		mock.ExpectRollback()

		if _, err := repo.Refund(context.Background(), 1, 0, "zero"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("expected invalid amount, got %v", err)
		}
	})

	t.Run("cumulative refund beyond total", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(1)).WillReturnRows(orderRow(1, model.OrderStatusDelivered, 50, 40))
		mock.ExpectRollback()

		if _, err := repo.Refund(context.Background(), 1, 20, "too much"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("expected invalid amount, got %v", err)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("FROM orders WHERE id=").WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		if _, err := repo.Refund(context.Background(), 99, 10, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
