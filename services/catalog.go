// Package services implements the partner monetization engine: plan catalog,
// commission math, the transaction ledger, payouts, partner tiering and the
// ROI/analytics layers.
package services

import "github.com/colleco/partner_backend/models"

// FreePlanID is the fallback plan for partners without a subscription and for
// unknown plan ids
const FreePlanID = "free"

// planCatalog is the static ordered catalog, lowest tier first. Commission
// base is monotonically non-increasing as plans rise; the ROI math relies on
// that ordering.
var planCatalog = []models.Plan{
	{
		ID:           "free",
		Name:         "Free",
		Description:  "Perfect for new partners testing the platform",
		MonthlyPrice: models.FixedPrice(0),
		Commission:   models.CommissionSchedule{Base: 0.20, BonusPercentage: 0.05, MaxCommission: 0.25},
		Features: map[string]interface{}{
			"listings":          1,
			"analyticsTracking": true,
			"basicReports":      true,
			"automationRules":   0,
			"monthlyLeads":      50,
		},
		Limitations: map[string]interface{}{
			"reportFrequency": "monthly",
			"historicalData":  3,
		},
	},
	{
		ID:           "starter",
		Name:         "Starter",
		Description:  "For emerging partners ready to scale",
		MonthlyPrice: models.FixedPrice(149),
		Commission:   models.CommissionSchedule{Base: 0.15, BonusPercentage: 0.03, MaxCommission: 0.18},
		Features: map[string]interface{}{
			"listings":               3,
			"analyticsTracking":      true,
			"basicReports":           true,
			"competitorBenchmarking": true,
			"automationRules":        2,
			"monthlyLeads":           200,
		},
		Limitations: map[string]interface{}{
			"reportFrequency": "weekly",
			"historicalData":  6,
		},
	},
	{
		ID:           "pro",
		Name:         "Pro",
		Description:  "For successful partners maximizing revenue",
		MonthlyPrice: models.FixedPrice(299),
		Commission:   models.CommissionSchedule{Base: 0.12, BonusPercentage: 0.02, MaxCommission: 0.14},
		Features: map[string]interface{}{
			"listings":               10,
			"analyticsTracking":      true,
			"advancedReports":        true,
			"competitorBenchmarking": true,
			"advancedPricingTools":   true,
			"customBranding":         true,
			"automationRules":        10,
			"monthlyLeads":           1000,
		},
		Limitations: map[string]interface{}{
			"reportFrequency": "daily",
			"historicalData":  24,
		},
	},
	{
		ID:           "enterprise",
		Name:         "Enterprise",
		Description:  "White-glove service for portfolio operators",
		MonthlyPrice: models.CustomPrice(),
		Commission:   models.CommissionSchedule{Base: 0.08, BonusPercentage: 0.02, MaxCommission: 0.10},
		Features: map[string]interface{}{
			"listings":               "unlimited",
			"analyticsTracking":      true,
			"advancedReports":        true,
			"competitorBenchmarking": true,
			"advancedPricingTools":   true,
			"customBranding":         true,
			"automationRules":        "unlimited",
			"monthlyLeads":           "unlimited",
		},
		Limitations: map[string]interface{}{
			"reportFrequency": "real-time",
			"historicalData":  60,
		},
	},
}

// GetPlan returns the catalog entry for a plan id, falling back to the free
// plan for unknown ids. It never errors; strict callers should check the
// returned ID against the one they asked for.
func GetPlan(planID string) models.Plan {
	for _, plan := range planCatalog {
		if plan.ID == planID {
			return plan
		}
	}
	return planCatalog[0]
}

// AllPlans returns the full catalog in tier order
func AllPlans() []models.Plan {
	plans := make([]models.Plan, len(planCatalog))
	copy(plans, planCatalog)
	return plans
}

// PlanRank returns a plan's position in the tier order, -1 for unknown ids
func PlanRank(planID string) int {
	for i, plan := range planCatalog {
		if plan.ID == planID {
			return i
		}
	}
	return -1
}
