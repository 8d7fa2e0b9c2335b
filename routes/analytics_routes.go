package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
)

// RegisterAnalyticsRoutes sets up partner metrics and analytics routes
func RegisterAnalyticsRoutes(e *echo.Echo, analyticsController *controllers.AnalyticsController) {
	analytics := e.Group("/api/analytics")
	analytics.Use(middleware.JWTMiddleware())

	analytics.GET("/dashboard", analyticsController.GetDashboard)
	analytics.GET("/revenue", analyticsController.GetRevenueAnalytics)
	analytics.GET("/metrics", analyticsController.GetPartnerMetrics)
	analytics.PUT("/metrics/performance", analyticsController.UpdatePerformanceMetric)
}
