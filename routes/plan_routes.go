package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/controllers"
)

// RegisterPlanRoutes sets up the public plan catalog routes
func RegisterPlanRoutes(e *echo.Echo, planController *controllers.PlanController) {
	// The catalog is public so the pricing page can render without a login
	e.GET("/api/plans", planController.GetPlans)
	e.GET("/api/plans/:id", planController.GetPlan)
	e.GET("/api/tiers", planController.GetTierProgression)
}
