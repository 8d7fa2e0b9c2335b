// Package controllers exposes the monetization engine over HTTP.
package controllers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/services"
)

// requestTimeout bounds handler work against the database
const requestTimeout = 10 * time.Second

var validate = validator.New()

// PlanController serves the static plan catalog
type PlanController struct{}

func NewPlanController() *PlanController {
	return &PlanController{}
}

// GetPlans returns the full catalog in tier order
func (pc *PlanController) GetPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Plans retrieved successfully",
		Data:    services.AllPlans(),
	})
}

// GetPlan returns one catalog entry. Unknown ids are a 404, not the free
// fallback; the fallback is for subscription resolution only.
func (pc *PlanController) GetPlan(c echo.Context) error {
	planID := c.Param("id")
	plan := services.GetPlan(planID)
	if plan.ID != planID {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Plan not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Plan retrieved successfully",
		Data:    plan,
	})
}

// GetTierProgression returns the partner tier ladder
func (pc *PlanController) GetTierProgression(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tier progression retrieved successfully",
		Data:    services.TierProgression(),
	})
}
