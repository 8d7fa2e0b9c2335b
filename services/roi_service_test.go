package services

import (
	"context"
	"testing"

	"github.com/colleco/partner_backend/models"
)

func TestRecommendationBands(t *testing.T) {
	tests := []struct {
		revenue float64
		want    string
	}{
		{0, "free"},
		{4999, "free"},
		{5000, "starter"},
		{14999, "starter"},
		{15000, "pro"},
		{49999, "pro"},
		{50000, "enterprise"},
	}

	for _, tt := range tests {
		analyzer := NewROIAnalyzer("partner-1", "free", tt.revenue)
		if got := analyzer.Recommendation(); got != tt.want {
			t.Errorf("Recommendation at %v = %q, want %q", tt.revenue, got, tt.want)
		}
	}
}

func TestNewROIAnalyzerUnknownPlanFallsBackToFree(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "diamond", 1000)
	if analyzer.CurrentPlan != FreePlanID {
		t.Errorf("CurrentPlan = %q, want %q", analyzer.CurrentPlan, FreePlanID)
	}
}

func TestAnalyzeAllPlansFlags(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "starter", 20000)
	analysis := analyzer.AnalyzeAllPlans()
	if len(analysis) != 4 {
		t.Fatalf("plans analyzed = %d, want 4", len(analysis))
	}

	for _, entry := range analysis {
		wantCurrent := entry.PlanID == "starter"
		wantRecommended := entry.PlanID == "pro"
		if entry.IsCurrent != wantCurrent {
			t.Errorf("plan %s IsCurrent = %v, want %v", entry.PlanID, entry.IsCurrent, wantCurrent)
		}
		if entry.IsRecommended != wantRecommended {
			t.Errorf("plan %s IsRecommended = %v, want %v", entry.PlanID, entry.IsRecommended, wantRecommended)
		}
	}
}

func TestCalculateBreakeven(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "free", 20000)
	breakeven := analyzer.CalculateBreakeven()

	// only fixed-price paid plans appear
	if _, ok := breakeven["free"]; ok {
		t.Error("free plan has no breakeven")
	}
	if _, ok := breakeven["enterprise"]; ok {
		t.Error("custom-priced enterprise has no breakeven")
	}

	pro := breakeven["pro"]
	if pro.MonthlyBreakeven != 3738 {
		t.Errorf("pro MonthlyBreakeven = %d, want 3738", pro.MonthlyBreakeven)
	}
	if !pro.IsAlreadyProfit {
		t.Error("pro should already be profitable at 20000")
	}
	// ceil(3738 / (20000/30))
	if pro.DaysToBreakeven != 6 {
		t.Errorf("pro DaysToBreakeven = %d, want 6", pro.DaysToBreakeven)
	}
	// 20000 * 0.08 - 299
	if !near(pro.ProfitIfUpgraded, 1301) {
		t.Errorf("pro ProfitIfUpgraded = %v, want 1301", pro.ProfitIfUpgraded)
	}
}

func TestCalculateBreakevenZeroRevenue(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "free", 0)
	starter := analyzer.CalculateBreakeven()["starter"]

	if starter.DaysToBreakeven != 365 {
		t.Errorf("DaysToBreakeven = %d, want 365 with no revenue", starter.DaysToBreakeven)
	}
	if starter.IsAlreadyProfit {
		t.Error("zero revenue is never already profitable")
	}
	if starter.ProfitIfUpgraded != 0 {
		t.Errorf("ProfitIfUpgraded = %v, want floor of 0", starter.ProfitIfUpgraded)
	}
}

func TestGenerateInsight(t *testing.T) {
	t.Run("optimal when plan matches revenue", func(t *testing.T) {
		insight := NewROIAnalyzer("partner-1", "free", 1000).GenerateInsight()
		if insight.Type != models.InsightOptimal || insight.Action != "continue" {
			t.Errorf("insight = %+v, want optimal/continue", insight)
		}
	})

	t.Run("strong upgrade signal when already profitable", func(t *testing.T) {
		insight := NewROIAnalyzer("partner-1", "free", 20000).GenerateInsight()
		if insight.Type != models.InsightWowPositive || insight.Action != "upgrade_now" {
			t.Errorf("insight = %+v, want wow_positive/upgrade_now", insight)
		}
		if !near(insight.Savings, 1301) {
			t.Errorf("Savings = %v, want 1301", insight.Savings)
		}
		if !near(insight.AnnualSavings, 1301*12) {
			t.Errorf("AnnualSavings = %v, want %v", insight.AnnualSavings, 1301.0*12)
		}
	})

	t.Run("explore when recommendation is a downgrade", func(t *testing.T) {
		insight := NewROIAnalyzer("partner-1", "starter", 1000).GenerateInsight()
		if insight.Type != models.InsightInfo || insight.Action != "explore" {
			t.Errorf("insight = %+v, want info/explore", insight)
		}
	})
}

func TestSimulateGrowthPath(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "free", 4000)
	path := analyzer.SimulateGrowthPath(0.05)

	if len(path) != 25 {
		t.Fatalf("path length = %d, want months 0 through 24", len(path))
	}
	if path[0].Month != 0 || path[24].Month != 24 {
		t.Errorf("month range = %d..%d, want 0..24", path[0].Month, path[24].Month)
	}

	// 4000 * 1.05^3 is still under the 5000 starter band at the first
	// quarterly check; by month 6 it crosses it
	if path[3].PlanChange {
		t.Error("month 3 should not switch yet")
	}
	if !path[6].PlanChange || path[6].NewPlan != "starter" {
		t.Errorf("month 6 = %+v, want switch to starter", path[6])
	}
	if path[6].Plan != "free" {
		t.Errorf("month 6 plan = %q, want outgoing plan on the switch month", path[6].Plan)
	}
	if path[7].Plan != "starter" || path[24].Plan != "starter" {
		t.Error("plan should be starter from the month after the switch")
	}
}

func TestSimulateGrowthPathNeverDowngrades(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "pro", 1000)
	for _, projection := range analyzer.SimulateGrowthPath(0) {
		if projection.PlanChange || projection.Plan != "pro" {
			t.Fatalf("month %d = %+v, recommendation below current plan must not switch", projection.Month, projection)
		}
	}
}

func TestSimulateGrowthPathNeverAutoSwitchesToEnterprise(t *testing.T) {
	analyzer := NewROIAnalyzer("partner-1", "pro", 60000)
	if analyzer.Recommendation() != "enterprise" {
		t.Fatal("test premise: 60000 should recommend enterprise")
	}
	for _, projection := range analyzer.SimulateGrowthPath(0.05) {
		if projection.Plan == "enterprise" {
			t.Fatalf("month %d auto-switched to enterprise", projection.Month)
		}
	}
}

func TestGenerateComparisonTable(t *testing.T) {
	table := NewROIAnalyzer("partner-1", "free", 0).GenerateComparisonTable()
	if len(table) != 6 {
		t.Fatalf("rows = %d, want 6 revenue checkpoints", len(table))
	}
	if table[0].Revenue != 0 || table[5].Revenue != 50000 {
		t.Errorf("checkpoint range = %v..%v, want 0..50000", table[0].Revenue, table[5].Revenue)
	}

	var row15k models.ComparisonRow
	for _, row := range table {
		if row.Revenue == 15000 {
			row15k = row
		}
	}
	if len(row15k.Plans) != 4 {
		t.Fatalf("plans per row = %d, want 4", len(row15k.Plans))
	}
	// (0.20 - 0.12) * 15000 - 299
	if !near(row15k.Plans["pro"].MonthlyROI, 901) {
		t.Errorf("pro ROI at 15000 = %v, want 901", row15k.Plans["pro"].MonthlyROI)
	}
}

func TestAnalyzerForSnapshotsLiveState(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	if _, err := engine.subscriptions.UpdateSubscription(ctx, "partner-1", "starter", ""); err != nil {
		t.Fatalf("UpdateSubscription: %v", err)
	}
	if _, err := engine.tiers.RecordPartnerBooking(ctx, "partner-1", 20000); err != nil {
		t.Fatalf("RecordPartnerBooking: %v", err)
	}

	analyzer, err := engine.roi.AnalyzerFor(ctx, "partner-1")
	if err != nil {
		t.Fatalf("AnalyzerFor: %v", err)
	}
	if analyzer.CurrentPlan != "starter" {
		t.Errorf("CurrentPlan = %q, want starter", analyzer.CurrentPlan)
	}
	if analyzer.MonthlyRevenue != 20000 {
		t.Errorf("MonthlyRevenue = %v, want 20000", analyzer.MonthlyRevenue)
	}
}
