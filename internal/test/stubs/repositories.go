package stubs

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
)

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	Users      map[string]*model.User
	ByID       map[int64]*model.User
	Next       int64
	Err        error
	LastLogins []int64
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers account unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash, Role: role, IsActive: true}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches account by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches account by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored accounts, optionally filtered by role.
func (s *UserRepositoryStub) List(ctx context.Context, role *model.Role) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var users []model.User
	for _, u := range s.ByID {
		if role != nil && u.Role != *role {
			continue
		}
		users = append(users, *u)
	}
	return users, nil
}

// SetActive flips the account flag or returns not found.
func (s *UserRepositoryStub) SetActive(ctx context.Context, id int64, active bool) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.IsActive = active
	return nil
}

// TouchLastLogin records the invocation.
func (s *UserRepositoryStub) TouchLastLogin(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.LastLogins = append(s.LastLogins, id)
	return nil
}

// ItemRepositoryStub allows tests to customize catalog behaviour.
type ItemRepositoryStub struct {
	CreateFn       func(context.Context, *model.Item) (*model.Item, error)
	UpdateFn       func(context.Context, *model.Item) (*model.Item, error)
	DeactivateFn   func(context.Context, int64) error
	AddStockFn     func(context.Context, int64, int) (*model.Item, error)
	GetByIDFn      func(context.Context, int64) (*model.Item, error)
	ListFn         func(context.Context, repository.ItemFilter) ([]model.Item, error)
	ListLowStockFn func(context.Context, int) ([]model.Item, error)
}

func (s *ItemRepositoryStub) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, item)
	}
	out := *item
	out.ID = 1
	return &out, nil
}

func (s *ItemRepositoryStub) Update(ctx context.Context, item *model.Item) (*model.Item, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, item)
	}
	return item, nil
}

func (s *ItemRepositoryStub) Deactivate(ctx context.Context, id int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, id)
	}
	return nil
}

func (s *ItemRepositoryStub) AddStock(ctx context.Context, id int64, quantity int) (*model.Item, error) {
	if s.AddStockFn != nil {
		return s.AddStockFn(ctx, id, quantity)
	}
	return &model.Item{ID: id, Quantity: quantity}, nil
}

func (s *ItemRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Item{ID: id, IsActive: true}, nil
}

func (s *ItemRepositoryStub) List(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return nil, nil
}

func (s *ItemRepositoryStub) ListLowStock(ctx context.Context, limit int) ([]model.Item, error) {
	if s.ListLowStockFn != nil {
		return s.ListLowStockFn(ctx, limit)
	}
	return nil, nil
}

// OrderRepositoryStub allows tests to customize order behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, repository.OrderDraft) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListFn         func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, string) (*model.Order, error)
	RefundFn       func(context.Context, int64, float64, string) (*model.Order, error)
	Drafts         []repository.OrderDraft
}

func (s *OrderRepositoryStub) Create(ctx context.Context, draft repository.OrderDraft) (*model.Order, error) {
	s.Drafts = append(s.Drafts, draft)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return &model.Order{ID: 1, Number: draft.Number, CustomerID: draft.CustomerID, Status: model.OrderStatusConfirmed}, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, reason string) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status, reason)
	}
	return &model.Order{ID: orderID, Status: status, CancelReason: reason}, nil
}

func (s *OrderRepositoryStub) Refund(ctx context.Context, orderID int64, amount float64, reason string) (*model.Order, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, orderID, amount, reason)
	}
	return &model.Order{ID: orderID, RefundAmount: amount, PaymentStatus: model.PaymentStatusRefunded}, nil
}

// ReportRepositoryStub returns canned statistics.
type ReportRepositoryStub struct {
	SummaryFn         func(context.Context, *time.Time, *time.Time) (*model.SalesSummary, error)
	DailyFn           func(context.Context, int) ([]model.DailySales, error)
	MonthlyFn         func(context.Context, int) ([]model.MonthlyRevenue, error)
	TopCustomersFn    func(context.Context, int) ([]model.TopCustomer, error)
	ItemPerformanceFn func(context.Context, int) ([]model.ItemPerformance, error)
	CategoryRollupsFn func(context.Context) ([]model.CategoryRollup, error)
	RecentFn          func(context.Context, int) ([]model.RecentSale, error)
}

func (s *ReportRepositoryStub) Summary(ctx context.Context, from, to *time.Time) (*model.SalesSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, from, to)
	}
	return &model.SalesSummary{}, nil
}

func (s *ReportRepositoryStub) Daily(ctx context.Context, days int) ([]model.DailySales, error) {
	if s.DailyFn != nil {
		return s.DailyFn(ctx, days)
	}
	return nil, nil
}

func (s *ReportRepositoryStub) Monthly(ctx context.Context, year int) ([]model.MonthlyRevenue, error) {
	if s.MonthlyFn != nil {
		return s.MonthlyFn(ctx, year)
	}
	return nil, nil
}

func (s *ReportRepositoryStub) TopCustomers(ctx context.Context, limit int) ([]model.TopCustomer, error) {
	if s.TopCustomersFn != nil {
		return s.TopCustomersFn(ctx, limit)
	}
	return nil, nil
}

func (s *ReportRepositoryStub) ItemPerformance(ctx context.Context, limit int) ([]model.ItemPerformance, error) {
	if s.ItemPerformanceFn != nil {
		return s.ItemPerformanceFn(ctx, limit)
	}
	return nil, nil
}

func (s *ReportRepositoryStub) CategoryRollups(ctx context.Context) ([]model.CategoryRollup, error) {
	if s.CategoryRollupsFn != nil {
		return s.CategoryRollupsFn(ctx)
	}
	return nil, nil
}

func (s *ReportRepositoryStub) Recent(ctx context.Context, limit int) ([]model.RecentSale, error) {
	if s.RecentFn != nil {
		return s.RecentFn(ctx, limit)
	}
	return nil, nil
}

var (
	_ repository.UserRepository   = (*UserRepositoryStub)(nil)
	_ repository.ItemRepository   = (*ItemRepositoryStub)(nil)
	_ repository.OrderRepository  = (*OrderRepositoryStub)(nil)
	_ repository.ReportRepository = (*ReportRepositoryStub)(nil)
)
