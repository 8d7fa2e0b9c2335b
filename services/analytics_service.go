package services

import (
	"context"
	"math"
	"time"

	"github.com/colleco/partner_backend/models"
)

// AnalyticsService derives trends, forecasts and the dashboard view from the
// rolling partner metrics
type AnalyticsService struct {
	tiers *TierService
}

func NewAnalyticsService(tiers *TierService) *AnalyticsService {
	return &AnalyticsService{tiers: tiers}
}

// CalculateTrend fits an ordinary least squares line through the series with
// x = 1..n and returns its slope. Fewer than two points have no trend.
func CalculateTrend(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}

	fn := float64(n)
	sumX := fn * (fn + 1) / 2
	sumX2 := fn * (fn + 1) * (2*fn + 1) / 6
	sumY := 0.0
	sumXY := 0.0
	for i, y := range data {
		sumY += y
		sumXY += float64(i+1) * y
	}

	return (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
}

// GenerateRevenueForecast projects the trend forward from the last observed
// value. Projections are floored at zero; confidence drops 5 points per month
// out.
func GenerateRevenueForecast(history []float64, months int) []models.ForecastPoint {
	forecast := make([]models.ForecastPoint, 0, months)
	if len(history) == 0 {
		return forecast
	}

	trend := CalculateTrend(history)
	last := history[len(history)-1]

	for i := 1; i <= months; i++ {
		projected := last + trend*float64(i)
		forecast = append(forecast, models.ForecastPoint{
			Month:      i,
			Projected:  math.Round(math.Max(0, projected)),
			Confidence: 80 - i*5,
		})
	}
	return forecast
}

// CalculateRevenueAnalytics summarizes revenue history with trend, growth and
// a three-month forecast
func CalculateRevenueAnalytics(metrics models.PartnerMetrics) models.RevenueAnalytics {
	history := metrics.Revenue.History
	if len(history) == 0 {
		return models.RevenueAnalytics{Forecast: []models.ForecastPoint{}, History: []models.MonthlyRevenue{}}
	}

	amounts := make([]float64, len(history))
	totalRevenue := 0.0
	for i, item := range history {
		amounts[i] = item.Amount
		totalRevenue += item.Amount
	}

	growth := 0.0
	if len(history) >= 2 {
		last := history[len(history)-1].Amount
		previous := history[len(history)-2].Amount
		if previous != 0 {
			growth = (last - previous) / previous * 100
		}
	}

	kept := history
	if len(kept) > 12 {
		kept = kept[len(kept)-12:]
	}

	return models.RevenueAnalytics{
		TotalRevenue:   totalRevenue,
		AverageMonthly: math.Round(totalRevenue / float64(len(history))),
		Trend:          CalculateTrend(amounts),
		Growth:         growth,
		Forecast:       GenerateRevenueForecast(amounts, 3),
		History:        kept,
	}
}

// CalculateOccupancyAnalytics estimates occupied and vacant days from the
// occupancy rate
func CalculateOccupancyAnalytics(metrics models.PartnerMetrics) models.OccupancyAnalytics {
	rate := metrics.Performance.OccupancyRate
	occupiedDays := int(math.Round(rate / 100 * 365))
	return models.OccupancyAnalytics{
		CurrentOccupancy: rate,
		OccupiedDays:     occupiedDays,
		VacantDays:       365 - occupiedDays,
	}
}

// CalculateSatisfactionAnalytics summarizes guest feedback including NPS
func CalculateSatisfactionAnalytics(metrics models.PartnerMetrics) models.SatisfactionAnalytics {
	satisfaction := metrics.Satisfaction

	complaintRate := 0.0
	if satisfaction.ComplaintCount > 0 && satisfaction.ReviewCount > 0 {
		complaintRate = float64(satisfaction.ComplaintCount) / float64(satisfaction.ReviewCount) * 100
	}

	trend := "declining"
	if satisfaction.AverageRating >= 4.3 {
		trend = "improving"
	} else if satisfaction.AverageRating >= 4.0 {
		trend = "stable"
	}

	return models.SatisfactionAnalytics{
		AverageRating:      satisfaction.AverageRating,
		ReviewCount:        satisfaction.ReviewCount,
		RecommendationRate: satisfaction.RecommendationRate,
		ComplaintRate:      complaintRate,
		NPS:                satisfaction.RecommendationRate - (100 - satisfaction.RecommendationRate),
		SatisfactionTrend:  trend,
	}
}

// CalculateBookingAnalytics summarizes booking volume and outcomes
func CalculateBookingAnalytics(metrics models.PartnerMetrics) models.BookingAnalytics {
	bookings := metrics.Bookings

	avgValue := 0.0
	cancellationRate := 0.0
	if bookings.Total > 0 {
		avgValue = math.Round(metrics.Revenue.Total / float64(bookings.Total))
		cancellationRate = float64(bookings.Cancelled) / float64(bookings.Total) * 100
	}

	return models.BookingAnalytics{
		TotalBookings:       bookings.Total,
		CompletedBookings:   bookings.Completed,
		CancelledBookings:   bookings.Cancelled,
		CompletionRate:      bookings.CompletionRate,
		CancellationRate:    cancellationRate,
		AverageBookingValue: avgValue,
		MonthlyBookings:     bookings.ThisMonth,
	}
}

// CalculatePerformanceScore collapses the operational KPIs into a single
// 0-100 score. Each KPI is scaled against its target before weighting; the
// scaling constants bake the targets in.
func CalculatePerformanceScore(performance models.PerformanceMetrics) int {
	scores := map[string]float64{
		"responseTime": math.Max(0, 100-(performance.ResponseTime-2)*15),
		"occupancy":    math.Min(100, performance.OccupancyRate*1.43),
		"rating":       math.Min(100, performance.GuestRating*22.2),
		"cancellation": math.Max(0, 100-(performance.CancellationRate-5)*8),
		"completion":   performance.CompletionRate,
		"pricing":      math.Min(100, performance.PricingOptimization*10),
	}
	weights := map[string]float64{
		"responseTime": 0.15,
		"occupancy":    0.25,
		"rating":       0.20,
		"cancellation": 0.15,
		"completion":   0.15,
		"pricing":      0.10,
	}

	weighted := 0.0
	for key, score := range scores {
		weighted += score * weights[key]
	}
	return int(math.Round(weighted))
}

// GetDashboardData bundles every derived analytic for one partner
func (s *AnalyticsService) GetDashboardData(ctx context.Context, partnerID string) (models.DashboardData, error) {
	metrics, err := s.tiers.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return models.DashboardData{}, err
	}

	return models.DashboardData{
		Revenue:          CalculateRevenueAnalytics(metrics),
		Occupancy:        CalculateOccupancyAnalytics(metrics),
		Satisfaction:     CalculateSatisfactionAnalytics(metrics),
		Bookings:         CalculateBookingAnalytics(metrics),
		PerformanceScore: CalculatePerformanceScore(metrics.Performance),
		Timestamp:        time.Now(),
	}, nil
}

// GetRevenueAnalytics returns the revenue view alone
func (s *AnalyticsService) GetRevenueAnalytics(ctx context.Context, partnerID string) (models.RevenueAnalytics, error) {
	metrics, err := s.tiers.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return models.RevenueAnalytics{}, err
	}
	return CalculateRevenueAnalytics(metrics), nil
}
