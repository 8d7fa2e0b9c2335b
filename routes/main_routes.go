package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
	"github.com/colleco/partner_backend/middleware"
	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/websocket"
)

// SetupRoutes configures all API routes by calling individual route registration functions
func SetupRoutes(
	e *echo.Echo,
	hub *websocket.Hub,
	planController *controllers.PlanController,
	subscriptionController *controllers.SubscriptionController,
	bookingController *controllers.BookingController,
	earningsController *controllers.EarningsController,
	payoutController *controllers.PayoutController,
	roiController *controllers.ROIController,
	analyticsController *controllers.AnalyticsController,
) {
	// Register all route groups
	RegisterPlanRoutes(e, planController)
	RegisterSubscriptionRoutes(e, subscriptionController)
	RegisterEarningsRoutes(e, bookingController, earningsController)
	RegisterPayoutRoutes(e, payoutController)
	RegisterROIRoutes(e, roiController)
	RegisterAnalyticsRoutes(e, analyticsController)

	// WebSocket endpoint for payout and tier notifications
	ws := e.Group("/api/ws")
	ws.Use(middleware.JWTMiddleware())
	ws.GET("", func(c echo.Context) error {
		partnerID, err := middleware.ExtractPartnerID(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}
		return websocket.HandleWebSocket(c, hub, partnerID)
	})
}
