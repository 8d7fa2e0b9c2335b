package services

import "testing"

func TestComputeCommission(t *testing.T) {
	tests := []struct {
		name          string
		planID        string
		amount        float64
		bonusEligible bool
		wantRate      float64
		wantAmount    float64
	}{
		{"pro base rate", "pro", 1000, false, 0.12, 120.00},
		{"pro with bonus", "pro", 1000, true, 0.14, 140.00},
		{"free base rate", "free", 200, false, 0.20, 40.00},
		{"free bonus capped at max", "free", 1000, true, 0.25, 250.00},
		{"starter with bonus", "starter", 1000, true, 0.18, 180.00},
		{"enterprise base rate", "enterprise", 1000, false, 0.08, 80.00},
		{"rounds to cents", "free", 33.33, false, 0.20, 6.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCommission(GetPlan(tt.planID), tt.amount, tt.bonusEligible)
			if !near(got.EffectiveRate, tt.wantRate) {
				t.Errorf("EffectiveRate = %v, want %v", got.EffectiveRate, tt.wantRate)
			}
			if got.Commission != tt.wantAmount {
				t.Errorf("Commission = %v, want %v", got.Commission, tt.wantAmount)
			}
		})
	}
}

func TestCalculateMonthlyROI(t *testing.T) {
	roi := CalculateMonthlyROI("pro", 20000)

	if !near(roi.SubscriptionCost, 299) {
		t.Errorf("SubscriptionCost = %v, want 299", roi.SubscriptionCost)
	}
	// (0.20 - 0.12) * 20000
	if !near(roi.CommissionSaved, 1600) {
		t.Errorf("CommissionSaved = %v, want 1600", roi.CommissionSaved)
	}
	if !near(roi.MonthlyROI, 1301) {
		t.Errorf("MonthlyROI = %v, want 1301", roi.MonthlyROI)
	}
	if roi.Breakeven != 3738 {
		t.Errorf("Breakeven = %d, want 3738", roi.Breakeven)
	}
}

func TestCalculateMonthlyROIFreePlan(t *testing.T) {
	roi := CalculateMonthlyROI("free", 10000)

	if roi.CommissionSaved != 0 {
		t.Errorf("CommissionSaved = %v, want 0", roi.CommissionSaved)
	}
	if roi.MonthlyROI != 0 {
		t.Errorf("MonthlyROI = %v, want 0", roi.MonthlyROI)
	}
	if roi.Breakeven != 0 {
		t.Errorf("Breakeven = %d, want 0", roi.Breakeven)
	}
}

func TestCalculateMonthlyROIZeroRevenue(t *testing.T) {
	roi := CalculateMonthlyROI("pro", 0)

	if !near(roi.MonthlyROI, -299) {
		t.Errorf("MonthlyROI = %v, want -299", roi.MonthlyROI)
	}
	if roi.ROIPercentage != 0 {
		t.Errorf("ROIPercentage = %v, want 0 at zero revenue", roi.ROIPercentage)
	}
}

func TestCalculateMonthlyROIUnknownPlanFallsBackToFree(t *testing.T) {
	roi := CalculateMonthlyROI("diamond", 10000)
	if roi.PlanID != FreePlanID {
		t.Errorf("PlanID = %q, want %q", roi.PlanID, FreePlanID)
	}
}

func TestCalculateBreakevenRevenue(t *testing.T) {
	tests := []struct {
		planID string
		want   int
	}{
		{"free", 0},
		{"starter", 2980},
		{"pro", 3738},
		{"enterprise", 0},
	}

	for _, tt := range tests {
		t.Run(tt.planID, func(t *testing.T) {
			if got := CalculateBreakevenRevenue(tt.planID); got != tt.want {
				t.Errorf("CalculateBreakevenRevenue(%q) = %d, want %d", tt.planID, got, tt.want)
			}
		})
	}
}
