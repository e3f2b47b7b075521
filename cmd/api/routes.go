package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Health check endpoint
	app.router.GET("/ping", app.handlePing)

	// Forecast endpoints
	app.router.POST("/v1/forecast", app.handleForecast)
	app.router.POST("/v1/report", app.handleReport)
	app.router.POST("/v1/uploads", app.handleUploads)

	// Prometheus metrics
	app.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
