package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/middleware"
	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/services"
)

// PayoutController handles payout methods, initiation and the settlement
// lifecycle
type PayoutController struct {
	payouts *services.PayoutService
}

func NewPayoutController(payouts *services.PayoutService) *PayoutController {
	return &PayoutController{payouts: payouts}
}

// AddPayoutMethod registers a bank account for the partner
func (pc *PayoutController) AddPayoutMethod(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.AddPayoutMethodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Bank transfer requires account details",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	method, err := pc.payouts.AddPayoutMethod(ctx, partnerID, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to add payout method",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Payout method added successfully",
		Data:    method,
	})
}

// GetPayoutMethods lists the partner's registered bank accounts
func (pc *PayoutController) GetPayoutMethods(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	methods, err := pc.payouts.GetPayoutMethods(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payout methods",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout methods retrieved successfully",
		Data:    methods,
	})
}

// SetDefaultPayoutMethod marks one method default
func (pc *PayoutController) SetDefaultPayoutMethod(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := pc.payouts.SetDefaultPayoutMethod(ctx, partnerID, c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to set default payout method",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Default payout method updated",
	})
}

// GetUpcomingPayout reports what the partner would receive right now
func (pc *PayoutController) GetUpcomingPayout(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	upcoming, err := pc.payouts.GetUpcomingPayoutAmount(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve upcoming payout",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Upcoming payout retrieved successfully",
		Data:    upcoming,
	})
}

// InitiatePayout requests a payout of the partner's unclaimed earnings.
// Business failures (below threshold, no method) come back 200 with
// success=false so the dashboard can render the reason.
func (pc *PayoutController) InitiatePayout(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.InitiatePayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	result, err := pc.payouts.InitiatePayout(ctx, partnerID, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to initiate payout",
		})
	}

	message := "Payout initiated successfully"
	if !result.Success {
		message = result.Reason
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: message,
		Data:    result,
	})
}

// GetPayoutHistory returns the partner's payouts, newest first
func (pc *PayoutController) GetPayoutHistory(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	limit := 12
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	history, err := pc.payouts.GetPayoutHistory(ctx, partnerID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payout history",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout history retrieved successfully",
		Data:    history,
	})
}

// GetPayout returns one payout record
func (pc *PayoutController) GetPayout(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	payout, err := pc.payouts.GetPayout(ctx, partnerID, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Payout not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout retrieved successfully",
		Data:    payout,
	})
}

// GetPayoutSummary rolls up the partner's payout history
func (pc *PayoutController) GetPayoutSummary(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	summary, err := pc.payouts.GetPayoutSummary(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payout summary",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout summary retrieved successfully",
		Data:    summary,
	})
}

// ProcessPayout moves a pending payout to processing (admin)
func (pc *PayoutController) ProcessPayout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	payout, err := pc.payouts.ProcessPayout(ctx, c.Param("partnerId"), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout is now processing",
		Data:    payout,
	})
}

// CompletePayout settles a processing payout (admin)
func (pc *PayoutController) CompletePayout(c echo.Context) error {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	payout, err := pc.payouts.CompletePayout(ctx, c.Param("partnerId"), c.Param("id"), req.Reference)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout completed successfully",
		Data:    payout,
	})
}

// FailPayout marks a payout failed (admin); its transactions stay earned
func (pc *PayoutController) FailPayout(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	payout, err := pc.payouts.FailPayout(ctx, c.Param("partnerId"), c.Param("id"), req.Reason)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout marked as failed",
		Data:    payout,
	})
}

// GetPayoutStatistics is the cross-partner admin rollup
func (pc *PayoutController) GetPayoutStatistics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	stats, err := pc.payouts.GetPayoutStatistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payout statistics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout statistics retrieved successfully",
		Data:    stats,
	})
}

// GeneratePayoutReport covers all payouts in a date range (admin)
func (pc *PayoutController) GeneratePayoutReport(c echo.Context) error {
	start, err := time.Parse("2006-01-02", c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid start date, expected YYYY-MM-DD",
		})
	}
	end, err := time.Parse("2006-01-02", c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid end date, expected YYYY-MM-DD",
		})
	}
	end = end.Add(24*time.Hour - time.Nanosecond)

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	report, err := pc.payouts.GeneratePayoutReport(ctx, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate payout report",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout report generated successfully",
		Data:    report,
	})
}
