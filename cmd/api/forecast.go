package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sunfutures/internal/forecast"
	"sunfutures/internal/report"
)

// handleForecast godoc
// @Summary Daily energy forecast
// @Description Compute the daily energy yield forecast for a plant configuration
// @Tags forecast
// @Accept json
// @Produce json
// @Success 200 {object} forecast.Response
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /v1/forecast [post]
func (app *App) handleForecast(c *gin.Context) {
	var req forecast.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, cached, err := app.forecastService.Forecast(c.Request.Context(), req)
	if err != nil {
		app.respondForecastError(c, err)
		return
	}

	if cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, resp)
}

// ReportResponse bundles the forecast with its performance report.
type ReportResponse struct {
	Forecast *forecast.Response `json:"forecast"`
	Report   *report.Report     `json:"report"`
}

// handleReport godoc
// @Summary PVsyst-style performance report
// @Description Run the forecast pipeline and derive KPIs and a loss diagram; format=json|pdf|xlsx
// @Tags forecast
// @Accept json
// @Produce json
// @Success 200 {object} ReportResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /v1/report [post]
func (app *App) handleReport(c *gin.Context) {
	var req forecast.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, rep, err := app.forecastService.Report(c.Request.Context(), req)
	if err != nil {
		app.respondForecastError(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "pdf":
		data, err := report.BuildPDF(rep, resp.SiteName)
		if err != nil {
			app.logger.Error("failed to render report pdf", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="sunfutures-report.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	case "xlsx":
		data, err := report.BuildXLSX(rep, resp.SiteName)
		if err != nil {
			app.logger.Error("failed to render report xlsx", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="sunfutures-report.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusOK, ReportResponse{Forecast: resp, Report: rep})
	}
}

func (app *App) respondForecastError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, forecast.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, forecast.ErrUpstreamUnavailable):
		app.logger.Error("upstream weather source unavailable", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		app.logger.Error("forecast request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "forecast request failed"})
	}
}
