package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/devxankit/Electrici-toys/internal/metrics"
	"github.com/devxankit/Electrici-toys/internal/server/http/handlers"
	"github.com/devxankit/Electrici-toys/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, recorder *metrics.Recorder, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Tracing())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(recorder))
	engine.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	))

	orderHandler := handlers.NewOrderHandler(facade)

	engine.GET("/healthz", handlers.Health(facade))
	engine.GET("/metrics", gin.WrapH(recorder.Handler()))

	orders := engine.Group("/api/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.POST("", orderHandler.Place)
	orders.POST("/verify-payment", orderHandler.VerifyPayment)
	orders.GET("/user", orderHandler.ListOwn)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/cancel-order", orderHandler.Cancel)

	admin := orders.Group("")
	admin.Use(middleware.AdminRequired())
	admin.GET("", orderHandler.List)
	admin.PUT("/update-status", orderHandler.UpdateStatus)

	return engine
}
