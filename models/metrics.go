package models

import "time"

// Partner tiers, lowest to highest
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Health statuses
const (
	HealthHealthy  = "healthy"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

// MonthlyRevenue is one month of a partner's revenue history
type MonthlyRevenue struct {
	Month  string  `json:"month" bson:"month"` // 2006-01
	Amount float64 `json:"amount" bson:"amount"`
}

// RevenueMetrics tracks a partner's booking revenue over time
type RevenueMetrics struct {
	ThisMonth float64          `json:"thisMonth" bson:"thisMonth"`
	LastMonth float64          `json:"lastMonth" bson:"lastMonth"`
	ThisYear  float64          `json:"thisYear" bson:"thisYear"`
	Total     float64          `json:"total" bson:"total"`
	History   []MonthlyRevenue `json:"history" bson:"history"`
}

// BookingMetrics tracks booking volume and outcomes
type BookingMetrics struct {
	Total          int     `json:"total" bson:"total"`
	ThisMonth      int     `json:"thisMonth" bson:"thisMonth"`
	Completed      int     `json:"completed" bson:"completed"`
	Cancelled      int     `json:"cancelled" bson:"cancelled"`
	Pending        int     `json:"pending" bson:"pending"`
	CompletionRate float64 `json:"completionRate" bson:"completionRate"`
}

// PerformanceMetrics are the operational KPIs the health score is built from
type PerformanceMetrics struct {
	ResponseTime        float64 `json:"responseTime" bson:"responseTime"`               // hours
	OccupancyRate       float64 `json:"occupancyRate" bson:"occupancyRate"`             // percent
	GuestRating         float64 `json:"guestRating" bson:"guestRating"`                 // out of 5
	CancellationRate    float64 `json:"cancellationRate" bson:"cancellationRate"`       // percent
	CompletionRate      float64 `json:"completionRate" bson:"completionRate"`           // percent
	PricingOptimization float64 `json:"pricingOptimization" bson:"pricingOptimization"` // percent improvement
}

// SatisfactionMetrics tracks guest feedback
type SatisfactionMetrics struct {
	AverageRating      float64 `json:"averageRating" bson:"averageRating"`
	ReviewCount        int     `json:"reviewCount" bson:"reviewCount"`
	RecommendationRate float64 `json:"recommendationRate" bson:"recommendationRate"`
	ComplaintCount     int     `json:"complaintCount" bson:"complaintCount"`
}

// MetricScore is one scored health metric
type MetricScore struct {
	Actual float64 `json:"actual" bson:"actual"`
	Target float64 `json:"target" bson:"target"`
	Score  float64 `json:"score" bson:"score"`
}

// HealthScore is the weighted composite of the performance metrics
type HealthScore struct {
	Score     int                    `json:"score" bson:"score"`
	Status    string                 `json:"status" bson:"status"`
	Metrics   map[string]MetricScore `json:"metrics" bson:"metrics"`
	LastCheck time.Time              `json:"lastCheck" bson:"lastCheck"`
}

// PartnerMetrics is the aggregated rolling state for one partner, recomputed
// on every mutating event. Tier is always derived from lifetime revenue.
type PartnerMetrics struct {
	PartnerID        string              `json:"partnerId" bson:"_id"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	LastUpdated      time.Time           `json:"lastUpdated" bson:"lastUpdated"`
	Revenue          RevenueMetrics      `json:"revenue" bson:"revenue"`
	Bookings         BookingMetrics      `json:"bookings" bson:"bookings"`
	Performance      PerformanceMetrics  `json:"performance" bson:"performance"`
	Satisfaction     SatisfactionMetrics `json:"satisfaction" bson:"satisfaction"`
	Tier             string              `json:"tier" bson:"tier"`
	TierUpgradeAt    *time.Time          `json:"tierUpgradeAt,omitempty" bson:"tierUpgradeAt,omitempty"`
	NextTierProgress float64             `json:"nextTierProgress" bson:"nextTierProgress"`
	Health           HealthScore         `json:"health" bson:"health"`
}

// TierInfo is one row of the tier progression table
type TierInfo struct {
	Tier       string  `json:"tier"`
	Name       string  `json:"name"`
	MinRevenue float64 `json:"minRevenue"`
}

// UpdatePerformanceRequest updates one operational KPI
type UpdatePerformanceRequest struct {
	Metric string  `json:"metric" validate:"required,oneof=responseTime occupancyRate guestRating cancellationRate completionRate pricingOptimization"`
	Value  float64 `json:"value"`
}
