package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
)

// RegisterROIRoutes sets up the plan ROI analysis routes
func RegisterROIRoutes(e *echo.Echo, roiController *controllers.ROIController) {
	roi := e.Group("/api/roi")
	roi.Use(middleware.JWTMiddleware())

	roi.GET("/analysis", roiController.GetAnalysis)
	roi.GET("/plans", roiController.GetPlanComparison)
	roi.GET("/insight", roiController.GetInsight)
	roi.GET("/breakeven", roiController.GetBreakeven)
	roi.GET("/growth-path", roiController.GetGrowthPath)
	roi.GET("/comparison-table", roiController.GetComparisonTable)
}
