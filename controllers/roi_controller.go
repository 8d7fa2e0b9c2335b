package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/middleware"
	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/services"
)

// ROIController serves the "is my plan worth it" views
type ROIController struct {
	roi *services.ROIService
}

func NewROIController(roi *services.ROIService) *ROIController {
	return &ROIController{roi: roi}
}

func (rc *ROIController) analyzer(c echo.Context) (*services.ROIAnalyzer, error) {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	return rc.roi.AnalyzerFor(ctx, partnerID)
}

// GetAnalysis exports the full ROI analysis for the dashboard
func (rc *ROIController) GetAnalysis(c echo.Context) error {
	analyzer, err := rc.analyzer(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "ROI analysis retrieved successfully",
		Data:    analyzer.Export(),
	})
}

// GetPlanComparison returns every plan's ROI at the partner's revenue
func (rc *ROIController) GetPlanComparison(c echo.Context) error {
	analyzer, err := rc.analyzer(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Plan comparison retrieved successfully",
		Data:    analyzer.AnalyzeAllPlans(),
	})
}

// GetInsight returns the single upgrade recommendation
func (rc *ROIController) GetInsight(c echo.Context) error {
	analyzer, err := rc.analyzer(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "ROI insight retrieved successfully",
		Data:    analyzer.GenerateInsight(),
	})
}

// GetBreakeven reports when each paid plan pays for itself
func (rc *ROIController) GetBreakeven(c echo.Context) error {
	analyzer, err := rc.analyzer(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Breakeven analysis retrieved successfully",
		Data:    analyzer.CalculateBreakeven(),
	})
}

// GetGrowthPath simulates 24 months of revenue growth. The growth query
// parameter overrides the default 5% monthly rate.
func (rc *ROIController) GetGrowthPath(c echo.Context) error {
	growthRate := 0.05
	if growthStr := c.QueryParam("growth"); growthStr != "" {
		parsed, err := strconv.ParseFloat(growthStr, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid growth rate, expected a fraction between 0 and 1",
			})
		}
		growthRate = parsed
	}

	analyzer, err := rc.analyzer(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Growth path retrieved successfully",
		Data:    analyzer.SimulateGrowthPath(growthRate),
	})
}

// GetComparisonTable lays out every plan at the standard revenue checkpoints
func (rc *ROIController) GetComparisonTable(c echo.Context) error {
	analyzer, err := rc.analyzer(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Comparison table retrieved successfully",
		Data:    analyzer.GenerateComparisonTable(),
	})
}
