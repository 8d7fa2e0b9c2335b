package services

import (
	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/utils"
)

// CommissionBreakdown is the result of pricing a single booking
type CommissionBreakdown struct {
	BaseRate      float64
	EffectiveRate float64
	Commission    float64
}

// ComputeCommission prices one booking under a plan. The effective rate is
// the plan base plus the bonus when the booking qualifies, capped at the
// plan's maximum. The commission amount is rounded half-up to cents.
func ComputeCommission(plan models.Plan, bookingAmount float64, bonusEligible bool) CommissionBreakdown {
	rate := plan.Commission.Base
	if bonusEligible {
		rate = rate + plan.Commission.BonusPercentage
		if rate > plan.Commission.MaxCommission {
			rate = plan.Commission.MaxCommission
		}
	}
	return CommissionBreakdown{
		BaseRate:      plan.Commission.Base,
		EffectiveRate: rate,
		Commission:    utils.RoundToCents(bookingAmount * rate),
	}
}

// CalculateMonthlyROI compares a plan against the free baseline at a given
// monthly revenue. commissionSaved is what the lower commission rate keeps in
// the partner's pocket; monthlyROI nets out the subscription price. Custom
// prices charge 0 through the engine. Degenerate divisions return 0, never
// NaN.
func CalculateMonthlyROI(planID string, monthlyRevenue float64) models.MonthlyROI {
	plan := GetPlan(planID)
	freePlan := GetPlan(FreePlanID)

	subscriptionCost := plan.MonthlyPrice.Numeric()

	commissionSaved := 0.0
	if plan.ID != FreePlanID {
		commissionSaved = (freePlan.Commission.Base - plan.Commission.Base) * monthlyRevenue
	}

	monthlyROI := commissionSaved - subscriptionCost

	roiPercentage := 0.0
	if monthlyRevenue > 0 {
		roiPercentage = monthlyROI / monthlyRevenue * 100
	}

	breakeven := 0
	if subscriptionCost > 0 {
		breakeven = utils.CeilToInt(subscriptionCost, freePlan.Commission.Base-plan.Commission.Base)
	}

	return models.MonthlyROI{
		PlanID:           plan.ID,
		Plan:             plan.Name,
		SubscriptionCost: subscriptionCost,
		MonthlyPrice:     plan.MonthlyPrice,
		BaseCommission:   utils.RoundToCents(monthlyRevenue * plan.Commission.Base),
		CommissionRate:   plan.Commission.Base,
		MonthlyRevenue:   monthlyRevenue,
		CommissionSaved:  commissionSaved,
		MonthlyROI:       monthlyROI,
		ROIPercentage:    roiPercentage,
		Breakeven:        breakeven,
	}
}

// CalculateBreakevenRevenue returns the monthly revenue at which a paid plan's
// commission savings equal its price; 0 for free and custom-priced plans
func CalculateBreakevenRevenue(planID string) int {
	plan := GetPlan(planID)
	price := plan.MonthlyPrice.Numeric()
	if price == 0 {
		return 0
	}
	freePlan := GetPlan(FreePlanID)
	return utils.CeilToInt(price, freePlan.Commission.Base-plan.Commission.Base)
}
