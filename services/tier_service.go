package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/repositories"
	"github.com/colleco/partner_backend/utils"
)

// tierOrder lists partner tiers lowest to highest with their lifetime
// revenue thresholds
var tierOrder = []models.TierInfo{
	{Tier: models.TierBronze, Name: "Bronze", MinRevenue: 0},
	{Tier: models.TierSilver, Name: "Silver", MinRevenue: 50000},
	{Tier: models.TierGold, Name: "Gold", MinRevenue: 150000},
	{Tier: models.TierPlatinum, Name: "Platinum", MinRevenue: 500000},
}

// healthMetric is one scored KPI of the composite health score
type healthMetric struct {
	key    string
	target float64
	weight float64
	value  func(p models.PerformanceMetrics) float64
	score  func(actual, target float64) float64
}

// Lower-is-better metrics lose 5 points per unit over target; ratio metrics
// score actual/target and may exceed 100 except where capped.
var healthMetrics = []healthMetric{
	{
		key: "responseTime", target: 2, weight: 15,
		value: func(p models.PerformanceMetrics) float64 { return p.ResponseTime },
		score: overTargetPenalty,
	},
	{
		key: "occupancyRate", target: 70, weight: 25,
		value: func(p models.PerformanceMetrics) float64 { return p.OccupancyRate },
		score: targetRatio,
	},
	{
		key: "guestRating", target: 4.5, weight: 20,
		value: func(p models.PerformanceMetrics) float64 { return p.GuestRating },
		score: targetRatio,
	},
	{
		key: "cancellationRate", target: 5, weight: 15,
		value: func(p models.PerformanceMetrics) float64 { return p.CancellationRate },
		score: overTargetPenalty,
	},
	{
		key: "completionRate", target: 95, weight: 15,
		value: func(p models.PerformanceMetrics) float64 { return p.CompletionRate },
		score: targetRatio,
	},
	{
		key: "pricingOptimization", target: 10, weight: 10,
		value: func(p models.PerformanceMetrics) float64 { return p.PricingOptimization },
		score: func(actual, target float64) float64 { return math.Min(100, targetRatio(actual, target)) },
	},
}

func overTargetPenalty(actual, target float64) float64 {
	if actual <= target {
		return 100
	}
	return math.Max(0, 100-(actual-target)*5)
}

func targetRatio(actual, target float64) float64 {
	return actual / target * 100
}

// TierForRevenue maps lifetime revenue to a partner tier
func TierForRevenue(totalRevenue float64) string {
	for i := len(tierOrder) - 1; i >= 0; i-- {
		if totalRevenue >= tierOrder[i].MinRevenue {
			return tierOrder[i].Tier
		}
	}
	return models.TierBronze
}

// TierProgression returns the tier ladder, lowest first
func TierProgression() []models.TierInfo {
	ladder := make([]models.TierInfo, len(tierOrder))
	copy(ladder, tierOrder)
	return ladder
}

// CalculateHealthScore scores the operational KPIs against their targets and
// weights them into a 0-100 composite. Below 50 is critical, below 75 warning.
func CalculateHealthScore(performance models.PerformanceMetrics) models.HealthScore {
	totalScore := 0.0
	totalWeight := 0.0
	scored := make(map[string]models.MetricScore, len(healthMetrics))

	for _, metric := range healthMetrics {
		actual := metric.value(performance)
		score := metric.score(actual, metric.target)
		scored[metric.key] = models.MetricScore{Actual: actual, Target: metric.target, Score: score}
		totalScore += score * metric.weight
		totalWeight += metric.weight
	}

	finalScore := 0
	if totalWeight > 0 {
		finalScore = int(math.Round(totalScore / totalWeight))
	}

	status := models.HealthHealthy
	if finalScore < 50 {
		status = models.HealthCritical
	} else if finalScore < 75 {
		status = models.HealthWarning
	}

	return models.HealthScore{
		Score:     finalScore,
		Status:    status,
		Metrics:   scored,
		LastCheck: time.Now(),
	}
}

// TierService maintains the rolling per-partner metrics and the tier derived
// from lifetime revenue
type TierService struct {
	metrics  repositories.MetricsRepository
	locks    *PartnerLocks
	notifier Notifier
}

func NewTierService(metrics repositories.MetricsRepository, locks *PartnerLocks, notifier Notifier) *TierService {
	return &TierService{metrics: metrics, locks: locks, notifier: notifier}
}

// GetPartnerMetrics loads the partner's metrics, creating the default record
// on first access
func (s *TierService) GetPartnerMetrics(ctx context.Context, partnerID string) (models.PartnerMetrics, error) {
	existing, err := s.metrics.Get(ctx, partnerID)
	if err != nil {
		return models.PartnerMetrics{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	metrics := defaultMetrics(partnerID)
	if err := s.metrics.Save(ctx, metrics); err != nil {
		return models.PartnerMetrics{}, err
	}
	return metrics, nil
}

func defaultMetrics(partnerID string) models.PartnerMetrics {
	now := time.Now()
	performance := models.PerformanceMetrics{
		ResponseTime:        2,
		OccupancyRate:       70,
		GuestRating:         4.5,
		CancellationRate:    5,
		CompletionRate:      95,
		PricingOptimization: 10,
	}
	return models.PartnerMetrics{
		PartnerID:   partnerID,
		CreatedAt:   now,
		LastUpdated: now,
		Revenue:     models.RevenueMetrics{History: []models.MonthlyRevenue{}},
		Bookings:    models.BookingMetrics{CompletionRate: 95},
		Performance: performance,
		Satisfaction: models.SatisfactionMetrics{
			AverageRating:      4.5,
			RecommendationRate: 85,
		},
		Tier:   models.TierBronze,
		Health: CalculateHealthScore(performance),
	}
}

// RecordPartnerBooking folds a completed booking into the partner's rolling
// metrics: revenue counters, the 12-month history, tier and health
func (s *TierService) RecordPartnerBooking(ctx context.Context, partnerID string, amount float64) (models.PartnerMetrics, error) {
	lock := s.locks.Lock(partnerID)
	defer lock.Unlock()

	metrics, err := s.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return models.PartnerMetrics{}, err
	}

	metrics.Bookings.Total++
	metrics.Bookings.ThisMonth++
	metrics.Bookings.Completed++
	if metrics.Bookings.Total > 0 {
		metrics.Bookings.CompletionRate = utils.RoundToCents(float64(metrics.Bookings.Completed) / float64(metrics.Bookings.Total) * 100)
	}

	metrics.Revenue.ThisMonth += amount
	metrics.Revenue.ThisYear += amount
	metrics.Revenue.Total += amount

	monthKey := utils.MonthKey(time.Now())
	found := false
	for i := range metrics.Revenue.History {
		if metrics.Revenue.History[i].Month == monthKey {
			metrics.Revenue.History[i].Amount += amount
			found = true
			break
		}
	}
	if !found {
		metrics.Revenue.History = append(metrics.Revenue.History, models.MonthlyRevenue{Month: monthKey, Amount: amount})
	}
	if len(metrics.Revenue.History) > 12 {
		metrics.Revenue.History = metrics.Revenue.History[len(metrics.Revenue.History)-12:]
	}

	upgradedFrom := s.applyTier(&metrics)
	metrics.Health = CalculateHealthScore(metrics.Performance)
	metrics.LastUpdated = time.Now()

	if err := s.metrics.Save(ctx, metrics); err != nil {
		return models.PartnerMetrics{}, err
	}

	if upgradedFrom != "" && s.notifier != nil {
		s.notifier.NotifyTierUpgrade(partnerID, upgradedFrom, metrics.Tier)
	}
	return metrics, nil
}

// UpdatePerformanceMetric sets one operational KPI and recomputes health
func (s *TierService) UpdatePerformanceMetric(ctx context.Context, partnerID, metric string, value float64) (models.PartnerMetrics, error) {
	lock := s.locks.Lock(partnerID)
	defer lock.Unlock()

	metrics, err := s.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return models.PartnerMetrics{}, err
	}

	switch metric {
	case "responseTime":
		metrics.Performance.ResponseTime = value
	case "occupancyRate":
		metrics.Performance.OccupancyRate = value
	case "guestRating":
		metrics.Performance.GuestRating = value
	case "cancellationRate":
		metrics.Performance.CancellationRate = value
	case "completionRate":
		metrics.Performance.CompletionRate = value
	case "pricingOptimization":
		metrics.Performance.PricingOptimization = value
	default:
		return models.PartnerMetrics{}, fmt.Errorf("unknown performance metric: %s", metric)
	}

	metrics.Health = CalculateHealthScore(metrics.Performance)
	metrics.LastUpdated = time.Now()

	if err := s.metrics.Save(ctx, metrics); err != nil {
		return models.PartnerMetrics{}, err
	}
	return metrics, nil
}

// applyTier re-derives the tier from lifetime revenue and updates progress
// toward the next threshold. Returns the previous tier when an upgrade
// happened, "" otherwise.
func (s *TierService) applyTier(metrics *models.PartnerMetrics) string {
	newTier := TierForRevenue(metrics.Revenue.Total)
	upgradedFrom := ""
	if newTier != metrics.Tier {
		upgradedFrom = metrics.Tier
		metrics.Tier = newTier
		now := time.Now()
		metrics.TierUpgradeAt = &now
	}

	index := tierIndex(newTier)
	if index < len(tierOrder)-1 {
		current := tierOrder[index].MinRevenue
		next := tierOrder[index+1].MinRevenue
		progress := (metrics.Revenue.Total - current) / (next - current) * 100
		metrics.NextTierProgress = math.Min(100, math.Max(0, progress))
	} else {
		metrics.NextTierProgress = 100
	}
	return upgradedFrom
}

func tierIndex(tier string) int {
	for i, info := range tierOrder {
		if info.Tier == tier {
			return i
		}
	}
	return 0
}
