package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/snackshop/internal/server/http/handlers"
	"github.com/polkiloo/snackshop/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	itemHandler := handlers.NewItemHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired(facade))

	auth.GET("/user/me", authHandler.Me)

	auth.GET("/items", itemHandler.List)
	auth.GET("/items/:id", itemHandler.Get)

	auth.POST("/orders", orderHandler.Place)
	auth.GET("/orders", orderHandler.List)
	auth.GET("/orders/:id", orderHandler.Get)

	admin := auth.Group("")
	admin.Use(middleware.AdminRequired())

	admin.POST("/items", itemHandler.Create)
	admin.PUT("/items/:id", itemHandler.Update)
	admin.DELETE("/items/:id", itemHandler.Deactivate)
	admin.POST("/items/:id/stock", itemHandler.Restock)
	admin.GET("/items/low-stock", itemHandler.LowStock)

	admin.PUT("/orders/:id/status", orderHandler.SetStatus)
	admin.POST("/orders/:id/refund", orderHandler.Refund)

	admin.GET("/users", authHandler.List)
	admin.PUT("/users/:id/activate", authHandler.SetActive(true))
	admin.PUT("/users/:id/deactivate", authHandler.SetActive(false))

	admin.GET("/reports/stats", reportHandler.Stats)

	return engine
}
