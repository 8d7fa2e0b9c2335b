package services

import "testing"

func TestGetPlanFallsBackToFree(t *testing.T) {
	if got := GetPlan("nonexistent"); got.ID != FreePlanID {
		t.Errorf("GetPlan fallback = %q, want %q", got.ID, FreePlanID)
	}
	if got := GetPlan("pro"); got.ID != "pro" {
		t.Errorf("GetPlan(pro) = %q, want pro", got.ID)
	}
}

func TestPlanRank(t *testing.T) {
	tests := []struct {
		planID string
		want   int
	}{
		{"free", 0},
		{"starter", 1},
		{"pro", 2},
		{"enterprise", 3},
		{"unknown", -1},
	}

	for _, tt := range tests {
		if got := PlanRank(tt.planID); got != tt.want {
			t.Errorf("PlanRank(%q) = %d, want %d", tt.planID, got, tt.want)
		}
	}
}

func TestCatalogCommissionMonotonicallyDecreases(t *testing.T) {
	plans := AllPlans()
	for i := 1; i < len(plans); i++ {
		if plans[i].Commission.Base > plans[i-1].Commission.Base {
			t.Errorf("plan %s base commission %v exceeds lower-tier %s at %v",
				plans[i].ID, plans[i].Commission.Base, plans[i-1].ID, plans[i-1].Commission.Base)
		}
	}
}

func TestCatalogMaxCommissionBoundsBonus(t *testing.T) {
	for _, plan := range AllPlans() {
		if plan.Commission.Base > plan.Commission.MaxCommission {
			t.Errorf("plan %s base %v exceeds max %v", plan.ID, plan.Commission.Base, plan.Commission.MaxCommission)
		}
	}
}
