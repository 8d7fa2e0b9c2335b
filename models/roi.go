package models

// MonthlyROI is the net monthly benefit of a plan relative to the free
// baseline at a given revenue level
type MonthlyROI struct {
	PlanID           string    `json:"planId"`
	Plan             string    `json:"plan"`
	SubscriptionCost float64   `json:"subscriptionCost"`
	MonthlyPrice     PlanPrice `json:"monthlyPrice"`
	BaseCommission   float64   `json:"baseCommission"`
	CommissionRate   float64   `json:"commissionRate"`
	MonthlyRevenue   float64   `json:"monthlyRevenue"`
	CommissionSaved  float64   `json:"commissionSaved"`
	MonthlyROI       float64   `json:"monthlyROI"`
	ROIPercentage    float64   `json:"roiPercentage"`
	Breakeven        int       `json:"breakeven"`
}

// PlanROIAnalysis is one plan's ROI flagged against the partner's situation
type PlanROIAnalysis struct {
	MonthlyROI
	IsCurrent     bool `json:"isCurrent"`
	IsRecommended bool `json:"isRecommended"`
}

// BreakevenAnalysis answers "when does this plan pay for itself"
type BreakevenAnalysis struct {
	MonthlyBreakeven int     `json:"monthlyBreakeven"`
	DaysToBreakeven  int     `json:"daysToBreakeven"`
	IsAlreadyProfit  bool    `json:"isAlreadyProfit"`
	ProfitIfUpgraded float64 `json:"profitIfUpgraded"`
}

// ROI insight types
const (
	InsightOptimal     = "optimal"
	InsightWowPositive = "wow_positive"
	InsightInfo        = "info"
)

// ROIInsight is the upgrade recommendation shown to the partner
type ROIInsight struct {
	Type            string  `json:"type"`
	Message         string  `json:"message"`
	Action          string  `json:"action"`
	Savings         float64 `json:"savings,omitempty"`
	AnnualSavings   float64 `json:"annualSavings,omitempty"`
	DaysToBreakeven int     `json:"daysToBreakeven,omitempty"`
	TargetRevenue   int     `json:"targetRevenue,omitempty"`
}

// GrowthProjection is one month of the simulated growth path
type GrowthProjection struct {
	Month      int     `json:"month"`
	Revenue    float64 `json:"revenue"`
	Plan       string  `json:"plan"`
	PlanName   string  `json:"planName"`
	ROI        float64 `json:"roi"`
	Savings    float64 `json:"savings"`
	PlanChange bool    `json:"planChange,omitempty"`
	NewPlan    string  `json:"newPlan,omitempty"`
}

// ComparisonCell is one plan's numbers at one revenue checkpoint
type ComparisonCell struct {
	Subscription PlanPrice `json:"subscription"`
	Commission   float64   `json:"commission"`
	MonthlyROI   float64   `json:"monthlyROI"`
	Savings      float64   `json:"savings"`
}

// ComparisonRow is one revenue checkpoint across all plans
type ComparisonRow struct {
	Revenue float64                   `json:"revenue"`
	Plans   map[string]ComparisonCell `json:"plans"`
}

// ROIExport bundles the full analysis for the dashboard
type ROIExport struct {
	PartnerID      string                       `json:"partnerId"`
	CurrentPlan    string                       `json:"currentPlan"`
	MonthlyRevenue float64                      `json:"monthlyRevenue"`
	AllPlans       []PlanROIAnalysis            `json:"allPlansAnalysis"`
	Breakeven      map[string]BreakevenAnalysis `json:"breakeven"`
	Insight        ROIInsight                   `json:"insight"`
	GrowthPath     []GrowthProjection           `json:"growthPath"`
	Comparison     []ComparisonRow              `json:"comparisonTable"`
}
