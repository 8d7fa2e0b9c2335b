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

// EarningsController serves the partner-facing earnings views
type EarningsController struct {
	ledger *services.LedgerService
}

func NewEarningsController(ledger *services.LedgerService) *EarningsController {
	return &EarningsController{ledger: ledger}
}

// GetEarningsSummary returns lifetime and current-month earnings
func (ec *EarningsController) GetEarningsSummary(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	summary, err := ec.ledger.GetEarningsSummary(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve earnings summary",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Earnings summary retrieved successfully",
		Data:    summary,
	})
}

// GetTransactions returns the partner's most recent ledger entries
func (ec *EarningsController) GetTransactions(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	limit := 50
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	txns, err := ec.ledger.GetTransactions(ctx, partnerID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve transactions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Transactions retrieved successfully",
		Data:    txns,
	})
}

// GetMonthlyReport buckets the ledger for one calendar month. The offset
// query parameter selects how many months back, defaulting to the current
// month.
func (ec *EarningsController) GetMonthlyReport(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid month offset",
			})
		}
		offset = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	report, err := ec.ledger.GetMonthlyReport(ctx, partnerID, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve monthly report",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Monthly report retrieved successfully",
		Data:    report,
	})
}

// GetYearToDateEarnings aggregates the current calendar year
func (ec *EarningsController) GetYearToDateEarnings(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	ytd, err := ec.ledger.GetYearToDateEarnings(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve year-to-date earnings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Year-to-date earnings retrieved successfully",
		Data:    ytd,
	})
}

// GetCommissionAnalytics is the cross-partner admin report
func (ec *EarningsController) GetCommissionAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	analytics, err := ec.ledger.GetCommissionAnalytics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commission analytics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission analytics retrieved successfully",
		Data:    analytics,
	})
}
