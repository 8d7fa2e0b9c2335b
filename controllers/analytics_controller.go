package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/middleware"
	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/services"
)

// AnalyticsController serves partner metrics, tiering and derived analytics
type AnalyticsController struct {
	analytics *services.AnalyticsService
	tiers     *services.TierService
}

func NewAnalyticsController(analytics *services.AnalyticsService, tiers *services.TierService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, tiers: tiers}
}

// GetDashboard bundles every derived analytic for the partner dashboard
func (ac *AnalyticsController) GetDashboard(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	dashboard, err := ac.analytics.GetDashboardData(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve dashboard data",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard data retrieved successfully",
		Data:    dashboard,
	})
}

// GetRevenueAnalytics returns the revenue trend and forecast
func (ac *AnalyticsController) GetRevenueAnalytics(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	analytics, err := ac.analytics.GetRevenueAnalytics(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve revenue analytics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Revenue analytics retrieved successfully",
		Data:    analytics,
	})
}

// GetPartnerMetrics returns the rolling metrics document including tier and
// health
func (ac *AnalyticsController) GetPartnerMetrics(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	metrics, err := ac.tiers.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve partner metrics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Partner metrics retrieved successfully",
		Data:    metrics,
	})
}

// UpdatePerformanceMetric sets one operational KPI and recomputes health
func (ac *AnalyticsController) UpdatePerformanceMetric(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.UpdatePerformanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown performance metric",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	metrics, err := ac.tiers.UpdatePerformanceMetric(ctx, partnerID, req.Metric, req.Value)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Performance metric updated successfully",
		Data:    metrics,
	})
}
