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

// SubscriptionController handles the partner subscription lifecycle
type SubscriptionController struct {
	subscriptions *services.SubscriptionService
}

func NewSubscriptionController(subscriptions *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptions: subscriptions}
}

// GetSubscription returns the partner's subscription, creating the free-tier
// record on first access
func (sc *SubscriptionController) GetSubscription(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	sub, err := sc.subscriptions.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve subscription",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription retrieved successfully",
		Data:    sub,
	})
}

// UpdateSubscription switches the partner to a new plan
func (sc *SubscriptionController) UpdateSubscription(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "planId is required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	change, err := sc.subscriptions.UpdateSubscription(ctx, partnerID, req.PlanID, req.Reason)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription updated successfully",
		Data:    change,
	})
}

// PauseSubscription pauses billing while keeping plan access
func (sc *SubscriptionController) PauseSubscription(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	sub, err := sc.subscriptions.PauseSubscription(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription paused. You can resume anytime.",
		Data:    sub,
	})
}

// ResumeSubscription reactivates a paused subscription
func (sc *SubscriptionController) ResumeSubscription(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	sub, err := sc.subscriptions.ResumeSubscription(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription resumed.",
		Data:    sub,
	})
}

// CancelSubscription cancels the paid plan and drops back to free
func (sc *SubscriptionController) CancelSubscription(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

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

	sub, err := sc.subscriptions.CancelSubscription(ctx, partnerID, req.Reason)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription cancelled. You have been downgraded to Free tier.",
		Data:    sub,
	})
}

// GetBillingHistory returns the partner's invoices, newest first
func (sc *SubscriptionController) GetBillingHistory(c echo.Context) error {
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

	invoices, err := sc.subscriptions.GetBillingHistory(ctx, partnerID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve billing history",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Billing history retrieved successfully",
		Data:    invoices,
	})
}

// PayInvoice settles a pending invoice
func (sc *SubscriptionController) PayInvoice(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	invoice, err := sc.subscriptions.MarkInvoicePaid(ctx, partnerID, c.Param("id"), req.PaymentMethod)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Invoice paid successfully",
		Data:    invoice,
	})
}

// ProcessRenewal issues the next monthly invoice when the renewal date has
// passed
func (sc *SubscriptionController) ProcessRenewal(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	due, err := sc.subscriptions.IsRenewalDue(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check renewal",
		})
	}
	if !due {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Subscription renewal is not due",
		})
	}

	invoice, err := sc.subscriptions.ProcessRenewal(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Renewal processed successfully",
		Data:    invoice,
	})
}

// GetSubscriptionStats summarizes the partner's billing relationship
func (sc *SubscriptionController) GetSubscriptionStats(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	stats, err := sc.subscriptions.GetSubscriptionStats(ctx, partnerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve subscription stats",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription stats retrieved successfully",
		Data:    stats,
	})
}

// GetSubscriptionAnalytics is the cross-partner admin report
func (sc *SubscriptionController) GetSubscriptionAnalytics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	analytics, err := sc.subscriptions.GetSubscriptionAnalytics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve subscription analytics",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription analytics retrieved successfully",
		Data:    analytics,
	})
}
