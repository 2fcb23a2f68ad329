package repository

import (
	"context"

	"github.com/polkiloo/snackshop/internal/domain/model"
)

// UserRepository describes persistence operations for accounts. The purchase
// aggregates are written only by OrderRepository transactions.
type UserRepository interface {
	Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, role *model.Role) ([]model.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
	TouchLastLogin(ctx context.Context, id int64) error
}
