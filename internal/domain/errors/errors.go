package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrOrderAlreadyCancelled = errors.New("order already cancelled")
	ErrAccountDisabled       = errors.New("account disabled")
)

// InsufficientStockError reports a line whose requested quantity exceeds the
// item's on-hand stock. The whole order is rejected; no stock is decremented.
type InsufficientStockError struct {
	ItemID    int64
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ItemName, e.Available, e.Requested)
}

// PartialFailureError marks a mutation that failed after some effects may have
// been applied and could not be rolled back. It requires manual reconciliation
// and is surfaced distinctly from clean validation failures.
type PartialFailureError struct {
	OrderNumber string
	Err         error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure applying order %s: %v", e.OrderNumber, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
