package test

import (
	"context"

	"github.com/polkiloo/snackshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
)

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Claims  pkgAuth.TokenClaims
	Err     error
	ParseFn func(string) (pkgAuth.TokenClaims, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (pkgAuth.TokenClaims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return pkgAuth.TokenClaims{}, s.Err
	}
	return s.Claims, nil
}

// AuthFacadeStub simulates account facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (pkgAuth.TokenClaims, error)
	AccountFn      func(context.Context, int64) (*model.User, error)
	ListFn         func(context.Context, *model.Role) ([]model.User, error)
	SetActiveFn    func(context.Context, int64, bool) error
}

// Register returns a user and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, name, password)
	}
	return &model.User{ID: 1, Email: email, Name: name, Role: model.RoleCustomer, IsActive: true}, "token", nil
}

// Authenticate returns a user and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer, IsActive: true}, "token", nil
}

// ParseToken returns stored claims for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.TokenClaims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.TokenClaims{UserID: 1, Role: string(model.RoleCustomer)}, nil
}

// Account fetches the stored account view.
func (s AuthFacadeStub) Account(ctx context.Context, id int64) (*model.User, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, id)
	}
	return &model.User{ID: id, Role: model.RoleCustomer, IsActive: true}, nil
}

// ListAccounts returns preconfigured accounts.
func (s AuthFacadeStub) ListAccounts(ctx context.Context, role *model.Role) ([]model.User, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, role)
	}
	return []model.User{{ID: 1, Role: model.RoleCustomer, IsActive: true}}, nil
}

// SetAccountActive executes configured activation handler.
func (s AuthFacadeStub) SetAccountActive(ctx context.Context, id int64, active bool) error {
	if s.SetActiveFn != nil {
		return s.SetActiveFn(ctx, id, active)
	}
	return nil
}
