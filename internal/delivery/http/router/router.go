// Package router contains routing setup for the HTTP delivery.
package router

import (
	"healthboard/internal/delivery/http/middleware"
	"healthboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers to register, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ReadingHandler *handler.ReadingHandler
	ExportHandler  *handler.ExportHandler
	WatchHandler   *handler.WatchHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	readingHandler *handler.ReadingHandler
	exportHandler  *handler.ExportHandler
	watchHandler   *handler.WatchHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		readingHandler: params.ReadingHandler,
		exportHandler:  params.ExportHandler,
		watchHandler:   params.WatchHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	api := e.Group("/api")

	// Keyed watch sync stays anonymous: the API key inside the payload
	// identifies the user.
	api.POST("/watch/sync-key", r.watchHandler.SyncWithKey)

	// Everything else requires a valid access token.
	readingGroup := api.Group("/readings")
	readingGroup.Use(r.authMiddleware.Authenticate)
	{
		readingGroup.POST("", r.readingHandler.SubmitReading)
		readingGroup.GET("", r.readingHandler.GetReadings)
		readingGroup.GET("/recent", r.readingHandler.GetRecentReadings)
		readingGroup.GET("/by-type", r.readingHandler.GetReadingsByType)
		readingGroup.GET("/grouped", r.readingHandler.GetReadingsGrouped)
		readingGroup.GET("/averages", r.readingHandler.GetAverages)
		readingGroup.GET("/statistics", r.readingHandler.GetStatistics)
		readingGroup.GET("/analytics", r.readingHandler.GetAnalytics)
		readingGroup.GET("/export/json", r.exportHandler.ExportJSON)
		readingGroup.GET("/export/xml", r.exportHandler.ExportXML)
		readingGroup.POST("/import", r.readingHandler.ImportReadings)
		readingGroup.DELETE("", r.readingHandler.ClearReadings)
	}

	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.Use(r.authMiddleware.Authenticate)
	{
		dashboardGroup.GET("", r.readingHandler.GetDashboard)
	}

	watchGroup := api.Group("/watch")
	watchGroup.Use(r.authMiddleware.Authenticate)
	{
		watchGroup.POST("/sync", r.watchHandler.Sync)
		watchGroup.GET("/latest", r.watchHandler.Latest)
	}
}
