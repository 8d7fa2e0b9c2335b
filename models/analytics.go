package models

import "time"

// ForecastPoint is one projected month of revenue. Confidence decreases with
// distance and is intentionally not clamped.
type ForecastPoint struct {
	Month      int     `json:"month"`
	Projected  float64 `json:"projected"`
	Confidence int     `json:"confidence"`
}

// RevenueAnalytics summarizes revenue history with trend and forecast
type RevenueAnalytics struct {
	TotalRevenue   float64          `json:"totalRevenue"`
	AverageMonthly float64          `json:"averageMonthly"`
	Trend          float64          `json:"trend"`
	Growth         float64          `json:"growth"`
	Forecast       []ForecastPoint  `json:"forecast"`
	History        []MonthlyRevenue `json:"history"`
}

// OccupancyAnalytics estimates utilization and vacancy
type OccupancyAnalytics struct {
	CurrentOccupancy float64 `json:"currentOccupancy"`
	OccupiedDays     int     `json:"occupiedDays"`
	VacantDays       int     `json:"vacantDays"`
}

// SatisfactionAnalytics summarizes guest feedback
type SatisfactionAnalytics struct {
	AverageRating      float64 `json:"averageRating"`
	ReviewCount        int     `json:"reviewCount"`
	RecommendationRate float64 `json:"recommendationRate"`
	ComplaintRate      float64 `json:"complaintRate"`
	NPS                float64 `json:"nps"`
	SatisfactionTrend  string  `json:"satisfactionTrend"`
}

// BookingAnalytics summarizes booking volume and outcomes
type BookingAnalytics struct {
	TotalBookings       int     `json:"totalBookings"`
	CompletedBookings   int     `json:"completedBookings"`
	CancelledBookings   int     `json:"cancelledBookings"`
	CompletionRate      float64 `json:"completionRate"`
	CancellationRate    float64 `json:"cancellationRate"`
	AverageBookingValue float64 `json:"averageBookingValue"`
	MonthlyBookings     int     `json:"monthlyBookings"`
}

// DashboardData bundles every derived analytic for the partner dashboard
type DashboardData struct {
	Revenue          RevenueAnalytics      `json:"revenue"`
	Occupancy        OccupancyAnalytics    `json:"occupancy"`
	Satisfaction     SatisfactionAnalytics `json:"satisfaction"`
	Bookings         BookingAnalytics      `json:"bookings"`
	PerformanceScore int                   `json:"performanceScore"`
	Timestamp        time.Time             `json:"timestamp"`
}
