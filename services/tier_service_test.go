package services

import (
	"context"
	"testing"

	"github.com/colleco/partner_backend/models"
)

func TestTierForRevenue(t *testing.T) {
	tests := []struct {
		revenue float64
		want    string
	}{
		{0, models.TierBronze},
		{49999.99, models.TierBronze},
		{50000, models.TierSilver},
		{149999, models.TierSilver},
		{150000, models.TierGold},
		{499999, models.TierGold},
		{500000, models.TierPlatinum},
		{2000000, models.TierPlatinum},
	}

	for _, tt := range tests {
		if got := TierForRevenue(tt.revenue); got != tt.want {
			t.Errorf("TierForRevenue(%v) = %q, want %q", tt.revenue, got, tt.want)
		}
	}
}

func TestCalculateHealthScoreAtTargets(t *testing.T) {
	performance := models.PerformanceMetrics{
		ResponseTime:        2,
		OccupancyRate:       70,
		GuestRating:         4.5,
		CancellationRate:    5,
		CompletionRate:      95,
		PricingOptimization: 10,
	}

	health := CalculateHealthScore(performance)
	if health.Score != 100 {
		t.Errorf("Score = %d, want 100 when every metric hits target", health.Score)
	}
	if health.Status != models.HealthHealthy {
		t.Errorf("Status = %q, want %q", health.Status, models.HealthHealthy)
	}
}

func TestCalculateHealthScoreStatuses(t *testing.T) {
	// Every metric at exactly half its score lands the composite on 50,
	// which is warning, not critical
	halfway := models.PerformanceMetrics{
		ResponseTime:        12,   // 100 - (12-2)*5 = 50
		OccupancyRate:       35,   // 35/70*100 = 50
		GuestRating:         2.25, // 2.25/4.5*100 = 50
		CancellationRate:    15,   // 100 - (15-5)*5 = 50
		CompletionRate:      47.5, // 47.5/95*100 = 50
		PricingOptimization: 5,    // 5/10*100 = 50
	}
	health := CalculateHealthScore(halfway)
	if health.Score != 50 {
		t.Errorf("Score = %d, want 50", health.Score)
	}
	if health.Status != models.HealthWarning {
		t.Errorf("Status = %q, want %q", health.Status, models.HealthWarning)
	}

	floor := models.PerformanceMetrics{
		ResponseTime:     30,
		CancellationRate: 30,
	}
	health = CalculateHealthScore(floor)
	if health.Score != 0 {
		t.Errorf("Score = %d, want 0 at the floor", health.Score)
	}
	if health.Status != models.HealthCritical {
		t.Errorf("Status = %q, want %q", health.Status, models.HealthCritical)
	}
}

func TestCalculateHealthScorePricingCappedAt100(t *testing.T) {
	performance := models.PerformanceMetrics{
		ResponseTime:        2,
		OccupancyRate:       70,
		GuestRating:         4.5,
		CancellationRate:    5,
		CompletionRate:      95,
		PricingOptimization: 30, // ratio 300, capped to 100
	}
	health := CalculateHealthScore(performance)
	if got := health.Metrics["pricingOptimization"].Score; got != 100 {
		t.Errorf("pricingOptimization score = %v, want capped 100", got)
	}
}

func TestGetPartnerMetricsCreatesDefaults(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	metrics, err := engine.tiers.GetPartnerMetrics(ctx, "partner-1")
	if err != nil {
		t.Fatalf("GetPartnerMetrics: %v", err)
	}
	if metrics.Tier != models.TierBronze {
		t.Errorf("Tier = %q, want bronze", metrics.Tier)
	}
	if metrics.Health.Score != 100 {
		t.Errorf("default Health.Score = %d, want 100", metrics.Health.Score)
	}
	if metrics.Bookings.CompletionRate != 95 {
		t.Errorf("default CompletionRate = %v, want 95", metrics.Bookings.CompletionRate)
	}
}

func TestRecordPartnerBookingUpgradesTier(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	metrics, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 60000)
	if err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}

	if metrics.Tier != models.TierSilver {
		t.Errorf("Tier = %q, want silver", metrics.Tier)
	}
	if metrics.TierUpgradeAt == nil {
		t.Error("TierUpgradeAt not set on upgrade")
	}
	// (60000 - 50000) / (150000 - 50000) * 100
	if !near(metrics.NextTierProgress, 10) {
		t.Errorf("NextTierProgress = %v, want 10", metrics.NextTierProgress)
	}

	upgrades := engine.notifier.upgrades()
	if len(upgrades) != 1 {
		t.Fatalf("tier upgrade notifications = %d, want 1", len(upgrades))
	}
	if upgrades[0].previousTier != models.TierBronze || upgrades[0].newTier != models.TierSilver {
		t.Errorf("upgrade notification = %+v, want bronze -> silver", upgrades[0])
	}
}

func TestRecordPartnerBookingNeverDowngrades(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	if _, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 200000); err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}
	metrics, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 10)
	if err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}
	if metrics.Tier != models.TierGold {
		t.Errorf("Tier = %q, want gold; lifetime revenue only grows", metrics.Tier)
	}
}

func TestRecordPartnerBookingPlatinumProgress(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	metrics, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 750000)
	if err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}
	if metrics.Tier != models.TierPlatinum {
		t.Errorf("Tier = %q, want platinum", metrics.Tier)
	}
	if metrics.NextTierProgress != 100 {
		t.Errorf("NextTierProgress = %v, want 100 at the top tier", metrics.NextTierProgress)
	}
}

func TestRecordPartnerBookingRollsUpMonthHistory(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	if _, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 1000); err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}
	metrics, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 500)
	if err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}

	if len(metrics.Revenue.History) != 1 {
		t.Fatalf("History length = %d, want 1 bucket for the current month", len(metrics.Revenue.History))
	}
	if !near(metrics.Revenue.History[0].Amount, 1500) {
		t.Errorf("month bucket = %v, want 1500", metrics.Revenue.History[0].Amount)
	}
	if metrics.Bookings.Total != 2 || metrics.Bookings.Completed != 2 {
		t.Errorf("bookings = %d/%d, want 2/2", metrics.Bookings.Completed, metrics.Bookings.Total)
	}
}

func TestUpdatePerformanceMetric(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	metrics, err := engine.tiers.UpdatePerformanceMetric(ctx, "partner-1", "occupancyRate", 35)
	if err != nil {
		t.Fatalf("UpdatePerformanceMetric: %v", err)
	}
	if metrics.Performance.OccupancyRate != 35 {
		t.Errorf("OccupancyRate = %v, want 35", metrics.Performance.OccupancyRate)
	}
	if metrics.Health.Score >= 100 {
		t.Errorf("Health.Score = %d, expected recomputed below 100", metrics.Health.Score)
	}

	if _, err := engine.tiers.UpdatePerformanceMetric(ctx, "partner-1", "volume", 1); err == nil {
		t.Error("expected error for unknown metric")
	}
}
