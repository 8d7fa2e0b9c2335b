package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/repositories"
	"github.com/colleco/partner_backend/services"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("partnerId", "partner-1")
	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func newTestControllers() (*BookingController, *PayoutController, *PlanController) {
	locks := services.NewPartnerLocks()
	cache := services.NewReportCache(nil)
	tiers := services.NewTierService(repositories.NewMemoryMetricsRepository(), locks, nil)
	subscriptions := services.NewSubscriptionService(repositories.NewMemorySubscriptionRepository(), repositories.NewMemoryInvoiceRepository(), cache)
	ledger := services.NewLedgerService(repositories.NewMemoryTransactionRepository(), subscriptions, tiers, cache)
	payouts := services.NewPayoutService(repositories.NewMemoryPayoutRepository(), repositories.NewMemoryPayoutMethodRepository(), ledger, subscriptions, locks, nil, cache)

	return NewBookingController(ledger), NewPayoutController(payouts), NewPlanController()
}

func TestGetPlans(t *testing.T) {
	_, _, plans := newTestControllers()
	c, rec := newTestContext(t, http.MethodGet, "/api/plans", "")

	if err := plans.GetPlans(c); err != nil {
		t.Fatalf("GetPlans: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	resp := decodeResponse(t, rec)
	catalog, ok := resp.Data.([]interface{})
	if !ok || len(catalog) != 4 {
		t.Errorf("plan catalog = %v, want 4 plans", resp.Data)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	_, _, plans := newTestControllers()
	c, rec := newTestContext(t, http.MethodGet, "/api/plans/diamond", "")
	c.SetParamNames("id")
	c.SetParamValues("diamond")

	if err := plans.GetPlan(c); err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestConfirmBooking(t *testing.T) {
	bookings, _, _ := newTestControllers()
	c, rec := newTestContext(t, http.MethodPost, "/api/bookings/confirm",
		`{"bookingId":"BK-1","amount":1000}`)

	if err := bookings.ConfirmBooking(c); err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	txn, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %v, want transaction object", resp.Data)
	}
	if txn["commission"] != 200.0 {
		t.Errorf("commission = %v, want 200", txn["commission"])
	}
}

func TestConfirmBookingValidation(t *testing.T) {
	bookings, _, _ := newTestControllers()

	tests := []struct {
		name string
		body string
	}{
		{"missing booking id", `{"amount":1000}`},
		{"zero amount", `{"bookingId":"BK-1","amount":0}`},
		{"negative amount", `{"bookingId":"BK-1","amount":-50}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/api/bookings/confirm", tt.body)
			if err := bookings.ConfirmBooking(c); err != nil {
				t.Fatalf("ConfirmBooking: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestConfirmBookingUnauthorized(t *testing.T) {
	bookings, _, _ := newTestControllers()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/confirm", strings.NewReader(`{"bookingId":"BK-1","amount":100}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := bookings.ConfirmBooking(c); err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without partner identity", rec.Code)
	}
}

func TestInitiatePayoutBusinessFailureIs200(t *testing.T) {
	_, payouts, _ := newTestControllers()
	c, rec := newTestContext(t, http.MethodPost, "/api/payouts/initiate", `{}`)

	if err := payouts.InitiatePayout(c); err != nil {
		t.Fatalf("InitiatePayout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for business failures", rec.Code)
	}

	resp := decodeResponse(t, rec)
	result, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %v, want payout result", resp.Data)
	}
	if result["success"] != false {
		t.Error("success = true, want business failure")
	}
	if !strings.Contains(resp.Message, "Minimum payout threshold") {
		t.Errorf("Message = %q, want threshold reason", resp.Message)
	}
}
