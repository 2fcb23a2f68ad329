package model

import "time"

// Role distinguishes store operators from buyers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ValidRole reports whether r is a known account role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User represents a registered account. TotalPurchases and TotalSpent are
// aggregates over the account's non-cancelled orders, maintained by the order
// lifecycle transactions and clamped at zero on reversal.
type User struct {
	ID             int64
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	IsActive       bool
	TotalPurchases int
	TotalSpent     float64
	CreatedAt      time.Time
	LastLogin      time.Time
}
