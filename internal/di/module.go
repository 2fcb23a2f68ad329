package di

import (
	"github.com/polkiloo/snackshop/internal/adapter/media"
	"github.com/polkiloo/snackshop/internal/app"
	"github.com/polkiloo/snackshop/internal/config"
	"github.com/polkiloo/snackshop/internal/logger"
	"github.com/polkiloo/snackshop/internal/pkg/auth"
	"github.com/polkiloo/snackshop/internal/server/http/handlers"
	"github.com/polkiloo/snackshop/internal/server/http/router"
	"github.com/polkiloo/snackshop/internal/storage/postgres"
	"github.com/polkiloo/snackshop/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		media.Module,
		usecase.Module,
		fx.Provide(func(facade *app.ShopFacade) handlers.ShopFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
