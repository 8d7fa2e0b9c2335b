package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
)

// RegisterPayoutRoutes sets up partner payout routes and the admin
// settlement endpoints
func RegisterPayoutRoutes(e *echo.Echo, payoutController *controllers.PayoutController) {
	payouts := e.Group("/api/payouts")
	payouts.Use(middleware.JWTMiddleware())

	payouts.POST("/methods", payoutController.AddPayoutMethod)
	payouts.GET("/methods", payoutController.GetPayoutMethods)
	payouts.PUT("/methods/:id/default", payoutController.SetDefaultPayoutMethod)
	payouts.GET("/upcoming", payoutController.GetUpcomingPayout)
	payouts.POST("/initiate", payoutController.InitiatePayout)
	payouts.GET("/history", payoutController.GetPayoutHistory)
	payouts.GET("/summary", payoutController.GetPayoutSummary)
	payouts.GET("/:id", payoutController.GetPayout)

	// Settlement is driven by the finance team, not the partner
	admin := e.Group("/api/admin/payouts")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.POST("/:partnerId/:id/process", payoutController.ProcessPayout)
	admin.POST("/:partnerId/:id/complete", payoutController.CompletePayout)
	admin.POST("/:partnerId/:id/fail", payoutController.FailPayout)
	admin.GET("/statistics", payoutController.GetPayoutStatistics)
	admin.GET("/report", payoutController.GeneratePayoutReport)
}
