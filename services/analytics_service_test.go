package services

import (
	"context"
	"testing"

	"github.com/colleco/partner_backend/models"
)

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"rising arithmetic series", []float64{100, 200, 300}, 100},
		{"falling series", []float64{300, 200, 100}, -100},
		{"flat series", []float64{500, 500, 500, 500}, 0},
		{"single point", []float64{42}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTrend(tt.data); !near(got, tt.want) {
				t.Errorf("CalculateTrend(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestGenerateRevenueForecast(t *testing.T) {
	forecast := GenerateRevenueForecast([]float64{100, 200, 300}, 3)
	if len(forecast) != 3 {
		t.Fatalf("forecast length = %d, want 3", len(forecast))
	}

	want := []struct {
		projected  float64
		confidence int
	}{
		{400, 75},
		{500, 70},
		{600, 65},
	}
	for i, point := range forecast {
		if point.Month != i+1 {
			t.Errorf("forecast[%d].Month = %d, want %d", i, point.Month, i+1)
		}
		if point.Projected != want[i].projected {
			t.Errorf("forecast[%d].Projected = %v, want %v", i, point.Projected, want[i].projected)
		}
		if point.Confidence != want[i].confidence {
			t.Errorf("forecast[%d].Confidence = %d, want %d", i, point.Confidence, want[i].confidence)
		}
	}
}

func TestGenerateRevenueForecastFloorsAtZero(t *testing.T) {
	forecast := GenerateRevenueForecast([]float64{300, 200, 100}, 2)
	for _, point := range forecast {
		if point.Projected < 0 {
			t.Errorf("month %d projected %v below zero", point.Month, point.Projected)
		}
	}
	if forecast[1].Projected != 0 {
		t.Errorf("forecast[1].Projected = %v, want 0", forecast[1].Projected)
	}
}

func TestGenerateRevenueForecastEmptyHistory(t *testing.T) {
	if forecast := GenerateRevenueForecast(nil, 3); len(forecast) != 0 {
		t.Errorf("forecast from empty history = %v, want empty", forecast)
	}
}

func TestCalculateRevenueAnalytics(t *testing.T) {
	metrics := models.PartnerMetrics{
		Revenue: models.RevenueMetrics{
			History: []models.MonthlyRevenue{
				{Month: "2026-06", Amount: 1000},
				{Month: "2026-07", Amount: 2000},
				{Month: "2026-08", Amount: 3000},
			},
		},
	}

	analytics := CalculateRevenueAnalytics(metrics)
	if analytics.TotalRevenue != 6000 {
		t.Errorf("TotalRevenue = %v, want 6000", analytics.TotalRevenue)
	}
	if analytics.AverageMonthly != 2000 {
		t.Errorf("AverageMonthly = %v, want 2000", analytics.AverageMonthly)
	}
	if !near(analytics.Trend, 1000) {
		t.Errorf("Trend = %v, want 1000", analytics.Trend)
	}
	// (3000 - 2000) / 2000 * 100
	if !near(analytics.Growth, 50) {
		t.Errorf("Growth = %v, want 50", analytics.Growth)
	}
	if len(analytics.Forecast) != 3 {
		t.Fatalf("forecast length = %d, want 3", len(analytics.Forecast))
	}
	if analytics.Forecast[0].Projected != 4000 {
		t.Errorf("Forecast[0].Projected = %v, want 4000", analytics.Forecast[0].Projected)
	}
}

func TestCalculateRevenueAnalyticsZeroPreviousMonth(t *testing.T) {
	metrics := models.PartnerMetrics{
		Revenue: models.RevenueMetrics{
			History: []models.MonthlyRevenue{
				{Month: "2026-07", Amount: 0},
				{Month: "2026-08", Amount: 500},
			},
		},
	}
	if got := CalculateRevenueAnalytics(metrics).Growth; got != 0 {
		t.Errorf("Growth = %v, want 0 when the previous month is zero", got)
	}
}

func TestCalculateSatisfactionAnalytics(t *testing.T) {
	metrics := models.PartnerMetrics{
		Satisfaction: models.SatisfactionMetrics{
			AverageRating:      4.5,
			RecommendationRate: 85,
			ReviewCount:        200,
			ComplaintCount:     10,
		},
	}

	satisfaction := CalculateSatisfactionAnalytics(metrics)
	// 85 - (100 - 85)
	if !near(satisfaction.NPS, 70) {
		t.Errorf("NPS = %v, want 70", satisfaction.NPS)
	}
	if !near(satisfaction.ComplaintRate, 5) {
		t.Errorf("ComplaintRate = %v, want 5", satisfaction.ComplaintRate)
	}
	if satisfaction.SatisfactionTrend != "improving" {
		t.Errorf("SatisfactionTrend = %q, want improving", satisfaction.SatisfactionTrend)
	}
}

func TestSatisfactionTrendBands(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{4.3, "improving"},
		{4.0, "stable"},
		{3.9, "declining"},
	}
	for _, tt := range tests {
		metrics := models.PartnerMetrics{Satisfaction: models.SatisfactionMetrics{AverageRating: tt.rating}}
		if got := CalculateSatisfactionAnalytics(metrics).SatisfactionTrend; got != tt.want {
			t.Errorf("rating %v: trend = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestCalculateOccupancyAnalytics(t *testing.T) {
	metrics := models.PartnerMetrics{
		Performance: models.PerformanceMetrics{OccupancyRate: 70},
	}
	occupancy := CalculateOccupancyAnalytics(metrics)
	if occupancy.OccupiedDays+occupancy.VacantDays != 365 {
		t.Errorf("days = %d + %d, want total 365", occupancy.OccupiedDays, occupancy.VacantDays)
	}
	if occupancy.OccupiedDays != 255 {
		t.Errorf("OccupiedDays = %d, want 255", occupancy.OccupiedDays)
	}
}

func TestCalculatePerformanceScoreAtTargets(t *testing.T) {
	performance := models.PerformanceMetrics{
		ResponseTime:        2,
		OccupancyRate:       70,
		GuestRating:         4.5,
		CancellationRate:    5,
		CompletionRate:      95,
		PricingOptimization: 10,
	}
	if got := CalculatePerformanceScore(performance); got != 99 {
		t.Errorf("score = %d, want 99", got)
	}
}

func TestCalculatePerformanceScorePenalties(t *testing.T) {
	slow := models.PerformanceMetrics{
		ResponseTime:        12, // 100 - 10*15 floors at 0
		OccupancyRate:       70,
		GuestRating:         4.5,
		CancellationRate:    5,
		CompletionRate:      95,
		PricingOptimization: 10,
	}
	fast := slow
	fast.ResponseTime = 2

	if CalculatePerformanceScore(slow) >= CalculatePerformanceScore(fast) {
		t.Error("slower response time should lower the score")
	}
}

func TestGetDashboardData(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	if _, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 1000); err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}

	dashboard, err := engine.analytics.GetDashboardData(ctx, "partner-1")
	if err != nil {
		t.Fatalf("GetDashboardData: %v", err)
	}
	if dashboard.PerformanceScore != 99 {
		t.Errorf("PerformanceScore = %d, want 99 at default KPIs", dashboard.PerformanceScore)
	}
	if dashboard.Bookings.TotalBookings != 1 {
		t.Errorf("TotalBookings = %d, want 1", dashboard.Bookings.TotalBookings)
	}
	if dashboard.Revenue.TotalRevenue != 1000 {
		t.Errorf("TotalRevenue = %v, want 1000", dashboard.Revenue.TotalRevenue)
	}
}
