package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
)

// RegisterEarningsRoutes sets up booking confirmation and earnings routes
func RegisterEarningsRoutes(e *echo.Echo, bookingController *controllers.BookingController, earningsController *controllers.EarningsController) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	// Booking confirmations feed the ledger
	r.POST("/bookings/confirm", bookingController.ConfirmBooking)

	// Partner-facing earnings views
	r.GET("/earnings/summary", earningsController.GetEarningsSummary)
	r.GET("/earnings/transactions", earningsController.GetTransactions)
	r.GET("/earnings/monthly", earningsController.GetMonthlyReport)
	r.GET("/earnings/ytd", earningsController.GetYearToDateEarnings)

	// Cross-partner commission report for admins
	admin := e.Group("/api/admin/reports")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.GET("/commissions", earningsController.GetCommissionAnalytics)
}
