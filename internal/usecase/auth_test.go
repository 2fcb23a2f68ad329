package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/snackshop/internal/domain/errors"
	"github.com/polkiloo/snackshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
	testhelpers "github.com/polkiloo/snackshop/internal/test/stubs"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(claims pkgAuth.TokenClaims) (string, error) {
			return fmt.Sprintf("token-%d-%s", claims.UserID, claims.Role), nil
		},
		ParseFn: func(token string) (pkgAuth.TokenClaims, error) {
			var claims pkgAuth.TokenClaims
			if _, err := fmt.Sscanf(token, "token-%d-%s", &claims.UserID, &claims.Role); err != nil {
				return pkgAuth.TokenClaims{}, pkgAuth.ErrInvalidToken
			}
			return claims, nil
		},
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "owner@shop.test")

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "alice@shop.test", "Alice", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("expected customer role, got %q", user.Role)
	}
	if token != "token-1-customer" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@shop.test")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterAdminEmail(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "Owner@Shop.Test")

	user, _, err := uc.Register(context.Background(), "owner@shop.test", "Owner", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("expected admin role for configured email, got %q", user.Role)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub(), "")

	ctx := context.Background()
	cases := []struct {
		name        string
		email       string
		displayName string
		password    string
	}{
		{name: "empty email", email: "", displayName: "A", password: "123456"},
		{name: "empty name", email: "a@b.c", displayName: " ", password: "123456"},
		{name: "short password", email: "a@b.c", displayName: "A", password: "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Register(ctx, tc.email, tc.displayName, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "")

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob@shop.test", "Bob", "secret1"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob@shop.test", "Bob", "secret1"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "")

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "carol@shop.test", "Carol", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@shop.test", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "carol@shop.test", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1-customer" {
		t.Fatalf("unexpected token %q", token)
	}
	if len(repo.LastLogins) != 1 || repo.LastLogins[0] != 1 {
		t.Fatalf("expected last login touch, got %v", repo.LastLogins)
	}
}

func TestAuthUseCaseAuthenticateUnknownEmail(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub(), "")
	if _, _, err := uc.Authenticate(context.Background(), "nobody@shop.test", "123456"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateDisabledAccount(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "")

	ctx := context.Background()
	user, _, err := uc.Register(ctx, "dave@shop.test", "Dave", "123456")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := repo.SetActive(ctx, user.ID, false); err != nil {
		t.Fatalf("set active failed: %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "dave@shop.test", "123456"); !errors.Is(err, domainErrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub(), "")

	claims, err := uc.ParseToken("token-42-admin")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseListUsersByRole(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "owner@shop.test")

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "owner@shop.test", "Owner", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := uc.Register(ctx, "zoe@shop.test", "Zoe", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	role := model.RoleCustomer
	users, err := uc.ListUsers(ctx, &role)
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(users) != 1 || users[0].Email != "zoe@shop.test" {
		t.Fatalf("unexpected customer list: %+v", users)
	}
}

func TestAuthUseCaseSetActive(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), "")

	ctx := context.Background()
	user, _, err := uc.Register(ctx, "eve@shop.test", "Eve", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := uc.SetActive(ctx, user.ID, false); err != nil {
		t.Fatalf("set active failed: %v", err)
	}
	stored, err := uc.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if stored.IsActive {
		t.Fatal("expected account to be disabled")
	}
	if err := uc.SetActive(ctx, 999, true); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
