package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
)

const minPasswordLength = 6

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users      repository.UserRepository
	hasher     pkgAuth.PasswordHasher
	tokens     pkgAuth.Strategy
	adminEmail string
}

// NewAuthUseCase constructs AuthUseCase. An account registering with
// adminEmail receives the admin role; everyone else is a customer.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, adminEmail string) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, adminEmail: normalizeEmail(adminEmail)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleCustomer
	if u.adminEmail != "" && email == u.adminEmail {
		role = model.RoleAdmin
	}

	usr, err := u.users.Create(ctx, email, name, hash, role)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.TokenClaims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !usr.IsActive {
		return nil, "", domainErrors.ErrAccountDisabled
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.users.TouchLastLogin(ctx, usr.ID); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.TokenClaims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts identity claims from the provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.TokenClaims, error) {
	if token == "" {
		return pkgAuth.TokenClaims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches an account, including its purchase aggregates.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ListUsers returns accounts, optionally filtered by role.
func (u *AuthUseCase) ListUsers(ctx context.Context, role *model.Role) ([]model.User, error) {
	return u.users.List(ctx, role)
}

// SetActive enables or disables an account. Disabled customers cannot log in
// or place orders.
func (u *AuthUseCase) SetActive(ctx context.Context, id int64, active bool) error {
	return u.users.SetActive(ctx, id, active)
}
