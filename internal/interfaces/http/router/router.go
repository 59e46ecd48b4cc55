package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/logger"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/infrastructure/telemetry"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/interfaces/http/handler"
	"github.com/cheikht1/Synchronisation-WooCommerce-vers-Odoo/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// New builds the HTTP engine with the standard middleware stack, the
// operational endpoints, and every versioned API route.
//
// Middleware order:
// 1. RequestID - Generate/propagate request ID
// 2. Recovery - Catch panics
// 3. Logger - Log requests
func New(log *zap.Logger, registrars ...RouteRegistrar) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Operational endpoints live outside API versioning
	engine.GET("/healthz", handler.NewHealthHandler().Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(telemetry.Registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api/v1")
	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine
}
