package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/middleware"
	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/services"
)

// BookingController receives booking confirmations from the booking flow and
// turns them into ledger entries
type BookingController struct {
	ledger *services.LedgerService
}

func NewBookingController(ledger *services.LedgerService) *BookingController {
	return &BookingController{ledger: ledger}
}

// ConfirmBooking records commission for a confirmed booking
func (bc *BookingController) ConfirmBooking(c echo.Context) error {
	partnerID, err := middleware.ExtractPartnerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var booking models.BookingConfirmation
	if err := c.Bind(&booking); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request",
		})
	}
	if err := validate.Struct(&booking); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "bookingId and a positive amount are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	txn, err := bc.ledger.RecordTransaction(ctx, partnerID, booking)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Commission recorded successfully",
		Data:    txn,
	})
}
