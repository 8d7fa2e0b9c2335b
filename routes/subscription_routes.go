package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
)

// RegisterSubscriptionRoutes sets up all subscription and billing routes
func RegisterSubscriptionRoutes(e *echo.Echo, subscriptionController *controllers.SubscriptionController) {
	// Partner-facing subscription management
	subscription := e.Group("/api/subscription")
	subscription.Use(middleware.JWTMiddleware())

	subscription.GET("", subscriptionController.GetSubscription)
	subscription.PUT("", subscriptionController.UpdateSubscription)
	subscription.POST("/pause", subscriptionController.PauseSubscription)
	subscription.POST("/resume", subscriptionController.ResumeSubscription)
	subscription.POST("/cancel", subscriptionController.CancelSubscription)
	subscription.POST("/renew", subscriptionController.ProcessRenewal)
	subscription.GET("/billing", subscriptionController.GetBillingHistory)
	subscription.POST("/billing/:id/pay", subscriptionController.PayInvoice)
	subscription.GET("/stats", subscriptionController.GetSubscriptionStats)

	// Cross-partner subscription report for admins
	admin := e.Group("/api/admin/reports")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireAdmin())

	admin.GET("/subscriptions", subscriptionController.GetSubscriptionAnalytics)
}
