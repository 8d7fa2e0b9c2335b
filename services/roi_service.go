package services

import (
	"context"
	"fmt"
	"math"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/utils"
)

// comparisonRevenuePoints are the revenue checkpoints of the plan comparison
// table
var comparisonRevenuePoints = []float64{0, 5000, 10000, 15000, 25000, 50000}

// ROIAnalyzer answers "is my plan worth it" for one partner: per-plan ROI,
// breakeven, the upgrade recommendation and a simulated growth path. It is a
// snapshot; build a fresh one per request.
type ROIAnalyzer struct {
	PartnerID      string
	CurrentPlan    string
	MonthlyRevenue float64
}

func NewROIAnalyzer(partnerID, currentPlan string, monthlyRevenue float64) *ROIAnalyzer {
	if GetPlan(currentPlan).ID != currentPlan {
		currentPlan = FreePlanID
	}
	return &ROIAnalyzer{
		PartnerID:      partnerID,
		CurrentPlan:    currentPlan,
		MonthlyRevenue: monthlyRevenue,
	}
}

// AnalyzeAllPlans computes every plan's ROI at the partner's revenue, flagging
// the current and recommended plans
func (a *ROIAnalyzer) AnalyzeAllPlans() []models.PlanROIAnalysis {
	recommended := a.Recommendation()
	analysis := make([]models.PlanROIAnalysis, 0, len(planCatalog))
	for _, plan := range AllPlans() {
		analysis = append(analysis, models.PlanROIAnalysis{
			MonthlyROI:    CalculateMonthlyROI(plan.ID, a.MonthlyRevenue),
			IsCurrent:     plan.ID == a.CurrentPlan,
			IsRecommended: plan.ID == recommended,
		})
	}
	return analysis
}

// Recommendation bands the partner's revenue into the plan that fits it
func (a *ROIAnalyzer) Recommendation() string {
	return recommendedPlanForRevenue(a.MonthlyRevenue)
}

func recommendedPlanForRevenue(revenue float64) string {
	switch {
	case revenue >= 50000:
		return "enterprise"
	case revenue >= 15000:
		return "pro"
	case revenue >= 5000:
		return "starter"
	default:
		return FreePlanID
	}
}

// CalculateBreakeven reports, for each fixed-price paid plan, the revenue at
// which it pays for itself and how long that takes at the partner's pace
func (a *ROIAnalyzer) CalculateBreakeven() map[string]models.BreakevenAnalysis {
	results := make(map[string]models.BreakevenAnalysis)
	freePlan := GetPlan(FreePlanID)

	for _, plan := range AllPlans() {
		if plan.MonthlyPrice.Custom || plan.MonthlyPrice.Amount == 0 {
			continue
		}

		commissionDifference := freePlan.Commission.Base - plan.Commission.Base
		breakeven := utils.CeilToInt(plan.MonthlyPrice.Amount, commissionDifference)

		daysToBreakeven := 365
		if a.MonthlyRevenue > 0 {
			daysToBreakeven = int(math.Ceil(float64(breakeven) / (a.MonthlyRevenue / 30)))
		}

		results[plan.ID] = models.BreakevenAnalysis{
			MonthlyBreakeven: breakeven,
			DaysToBreakeven:  daysToBreakeven,
			IsAlreadyProfit:  a.MonthlyRevenue >= float64(breakeven),
			ProfitIfUpgraded: math.Max(0, a.MonthlyRevenue*commissionDifference-plan.MonthlyPrice.Amount),
		}
	}
	return results
}

// GenerateInsight turns the analysis into the single recommendation shown to
// the partner. A recommended plan that already pays for itself, or would
// within 90 days, is the strong upgrade signal.
func (a *ROIAnalyzer) GenerateInsight() models.ROIInsight {
	recommendation := a.Recommendation()
	breakeven := a.CalculateBreakeven()

	if recommendation == a.CurrentPlan {
		return models.ROIInsight{
			Type:    models.InsightOptimal,
			Message: fmt.Sprintf("Your current plan (%s) is perfect for your revenue level.", GetPlan(a.CurrentPlan).Name),
			Action:  "continue",
		}
	}

	recommendedPlan := GetPlan(recommendation)
	data, ok := breakeven[recommendation]
	if !ok {
		return models.ROIInsight{
			Type:    models.InsightInfo,
			Message: fmt.Sprintf("Consider exploring %s for more advanced features.", recommendedPlan.Name),
			Action:  "explore",
		}
	}

	if data.IsAlreadyProfit || data.DaysToBreakeven < 90 {
		return models.ROIInsight{
			Type:            models.InsightWowPositive,
			Message:         fmt.Sprintf("%s would pay for itself in %d days at your current revenue!", recommendedPlan.Name, data.DaysToBreakeven),
			Savings:         data.ProfitIfUpgraded,
			AnnualSavings:   data.ProfitIfUpgraded * 12,
			DaysToBreakeven: data.DaysToBreakeven,
			Action:          "upgrade_now",
		}
	}

	return models.ROIInsight{
		Type:          models.InsightInfo,
		Message:       fmt.Sprintf("Upgrade to %s when you reach R%d/month revenue.", recommendedPlan.Name, data.MonthlyBreakeven),
		TargetRevenue: data.MonthlyBreakeven,
		Action:        "monitor",
	}
}

// SimulateGrowthPath projects 24 months of compounding revenue growth and the
// plan the partner should be on along the way. The path only ever moves to a
// higher plan, re-checked quarterly, and never auto-switches onto the
// custom-priced enterprise plan.
func (a *ROIAnalyzer) SimulateGrowthPath(monthlyGrowthRate float64) []models.GrowthProjection {
	projections := make([]models.GrowthProjection, 0, 25)
	revenue := a.MonthlyRevenue
	currentPlan := a.CurrentPlan

	for month := 0; month <= 24; month++ {
		projection := models.GrowthProjection{
			Month:    month,
			Revenue:  math.Round(revenue),
			Plan:     currentPlan,
			PlanName: GetPlan(currentPlan).Name,
		}

		roi := CalculateMonthlyROI(currentPlan, revenue)
		projection.ROI = roi.MonthlyROI
		projection.Savings = roi.CommissionSaved

		if month > 0 && month%3 == 0 {
			recommended := recommendedPlanForRevenue(revenue)
			if recommended != "enterprise" && PlanRank(recommended) > PlanRank(currentPlan) {
				// the switch month still reports the outgoing plan; the new
				// plan takes effect from the following month
				currentPlan = recommended
				projection.PlanChange = true
				projection.NewPlan = recommended
			}
		}

		projections = append(projections, projection)
		revenue = revenue * (1 + monthlyGrowthRate)
	}
	return projections
}

// GenerateComparisonTable lays out every plan's numbers at the standard
// revenue checkpoints
func (a *ROIAnalyzer) GenerateComparisonTable() []models.ComparisonRow {
	table := make([]models.ComparisonRow, 0, len(comparisonRevenuePoints))
	for _, revenue := range comparisonRevenuePoints {
		row := models.ComparisonRow{
			Revenue: revenue,
			Plans:   make(map[string]models.ComparisonCell, len(planCatalog)),
		}
		for _, plan := range AllPlans() {
			roi := CalculateMonthlyROI(plan.ID, revenue)
			row.Plans[plan.ID] = models.ComparisonCell{
				Subscription: plan.MonthlyPrice,
				Commission:   plan.Commission.Base,
				MonthlyROI:   roi.MonthlyROI,
				Savings:      roi.CommissionSaved,
			}
		}
		table = append(table, row)
	}
	return table
}

// Export bundles the full analysis for the dashboard
func (a *ROIAnalyzer) Export() models.ROIExport {
	return models.ROIExport{
		PartnerID:      a.PartnerID,
		CurrentPlan:    a.CurrentPlan,
		MonthlyRevenue: a.MonthlyRevenue,
		AllPlans:       a.AnalyzeAllPlans(),
		Breakeven:      a.CalculateBreakeven(),
		Insight:        a.GenerateInsight(),
		GrowthPath:     a.SimulateGrowthPath(0.05),
		Comparison:     a.GenerateComparisonTable(),
	}
}

// ROIService builds analyzers from the partner's live subscription and
// metrics
type ROIService struct {
	subscriptions *SubscriptionService
	tiers         *TierService
}

func NewROIService(subscriptions *SubscriptionService, tiers *TierService) *ROIService {
	return &ROIService{subscriptions: subscriptions, tiers: tiers}
}

// AnalyzerFor snapshots the partner's current plan and this-month revenue
func (s *ROIService) AnalyzerFor(ctx context.Context, partnerID string) (*ROIAnalyzer, error) {
	sub, err := s.subscriptions.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.tiers.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return NewROIAnalyzer(partnerID, sub.PlanID, metrics.Revenue.ThisMonth), nil
}
