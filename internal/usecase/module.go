package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/snackshop/internal/config"
	"github.com/polkiloo/snackshop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/snackshop/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAuthUseCase,
	NewOrderUseCase,
	newCatalogUseCase,
	NewReportUseCase,
)

type authParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
	Config   *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, p.Config.AdminEmail)
}

type catalogParams struct {
	fx.In

	Items  repository.ItemRepository
	Media  MediaProber `optional:"true"`
	Logger *slog.Logger
}

func newCatalogUseCase(p catalogParams) *CatalogUseCase {
	return NewCatalogUseCase(p.Items, p.Media, p.Logger)
}
