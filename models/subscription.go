package models

import "time"

// Subscription statuses
const (
	SubscriptionActive    = "active"
	SubscriptionPaused    = "paused"
	SubscriptionCancelled = "cancelled"
)

// PlanTransition records a plan change or lifecycle event on a subscription
type PlanTransition struct {
	Event     string    `json:"event,omitempty" bson:"event,omitempty"`
	From      string    `json:"from,omitempty" bson:"from,omitempty"`
	To        string    `json:"to,omitempty" bson:"to,omitempty"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Subscription is the single per-partner subscription record. Partners without
// one are treated as free-tier; the record is created lazily on first access.
type Subscription struct {
	PartnerID    string           `json:"partnerId" bson:"_id"`
	PlanID       string           `json:"planId" bson:"planId"`
	PlanName     string           `json:"planName" bson:"planName"`
	Status       string           `json:"status" bson:"status"`
	StartDate    time.Time        `json:"startDate" bson:"startDate"`
	RenewalDate  time.Time        `json:"renewalDate" bson:"renewalDate"`
	PausedAt     *time.Time       `json:"pausedAt,omitempty" bson:"pausedAt,omitempty"`
	CancelledAt  *time.Time       `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CancelReason string           `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	History      []PlanTransition `json:"history" bson:"history"`
}

// Invoice statuses
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceFailed  = "failed"
)

// Invoice is a subscription charge issued on upgrade or renewal
type Invoice struct {
	ID            string     `json:"id" bson:"_id"`
	PartnerID     string     `json:"partnerId" bson:"partnerId"`
	PlanID        string     `json:"planId" bson:"planId"`
	PlanName      string     `json:"planName" bson:"planName"`
	Amount        float64    `json:"amount" bson:"amount"`
	Type          string     `json:"type" bson:"type"` // subscription_upgrade, monthly_renewal
	Status        string     `json:"status" bson:"status"`
	IssuedAt      time.Time  `json:"issuedAt" bson:"issuedAt"`
	DueDate       time.Time  `json:"dueDate" bson:"dueDate"`
	PaidAt        *time.Time `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
}

// UpdateSubscriptionRequest is the request body for a plan switch
type UpdateSubscriptionRequest struct {
	PlanID string `json:"planId" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// SubscriptionChange is returned after a successful plan switch
type SubscriptionChange struct {
	Subscription    Subscription   `json:"subscription"`
	Transition      PlanTransition `json:"transition"`
	NextBillingDate time.Time      `json:"nextBillingDate"`
}

// SubscriptionStats summarizes a partner's billing relationship
type SubscriptionStats struct {
	PartnerID               string  `json:"partnerId"`
	CurrentPlan             string  `json:"currentPlan"`
	PlanName                string  `json:"planName"`
	Status                  string  `json:"status"`
	DaysSinceStart          int     `json:"daysSinceStart"`
	MonthsSinceStart        int     `json:"monthsSinceStart"`
	TotalPaid               float64 `json:"totalPaid"`
	TotalInvoices           int     `json:"totalInvoices"`
	PaidInvoices            int     `json:"paidInvoices"`
	PendingInvoices         int     `json:"pendingInvoices"`
	MonthlyRecurringRevenue float64 `json:"monthlyRecurringRevenue"`
	LifetimeValue           float64 `json:"lifetimeValue"`
}

// PlanAdoption is one row of the subscription analytics breakdown
type PlanAdoption struct {
	Plan       string  `json:"plan"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	MRR        float64 `json:"mrr"`
	LTV        float64 `json:"ltv"`
}

// SubscriptionAnalytics is the cross-partner subscription report
type SubscriptionAnalytics struct {
	TotalPartners      int            `json:"totalPartners"`
	ActivePartners     int            `json:"activePartners"`
	PausedPartners     int            `json:"pausedPartners"`
	CancelledPartners  int            `json:"cancelledPartners"`
	TotalMRR           float64        `json:"totalMRR"`
	TotalLifetimeValue float64        `json:"totalLifetimeValue"`
	AverageLTV         float64        `json:"averageLTV"`
	ChurnRate          float64        `json:"churnRate"`
	AdoptionByPlan     []PlanAdoption `json:"adoptionByPlan"`
}
