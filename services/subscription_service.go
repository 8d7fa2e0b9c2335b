package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/repositories"
	"github.com/colleco/partner_backend/utils"
)

const subscriptionAnalyticsCacheKey = "reports:subscription_analytics"

// SubscriptionService manages the per-partner subscription lifecycle and
// billing records
type SubscriptionService struct {
	subscriptions repositories.SubscriptionRepository
	invoices      repositories.InvoiceRepository
	cache         *ReportCache
}

func NewSubscriptionService(subscriptions repositories.SubscriptionRepository, invoices repositories.InvoiceRepository, cache *ReportCache) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
		invoices:      invoices,
		cache:         cache,
	}
}

// GetPartnerSubscription returns the partner's subscription, lazily creating
// a free-tier record on first access
func (s *SubscriptionService) GetPartnerSubscription(ctx context.Context, partnerID string) (models.Subscription, error) {
	existing, err := s.subscriptions.Get(ctx, partnerID)
	if err != nil {
		return models.Subscription{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	now := time.Now()
	freePlan := GetPlan(FreePlanID)
	sub := models.Subscription{
		PartnerID:   partnerID,
		PlanID:      freePlan.ID,
		PlanName:    freePlan.Name,
		Status:      models.SubscriptionActive,
		StartDate:   now,
		RenewalDate: utils.AddMonths(now, 1),
		History:     []models.PlanTransition{},
	}
	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return models.Subscription{}, err
	}
	return sub, nil
}

// CurrentPlan resolves the partner's plan, falling back to free
func (s *SubscriptionService) CurrentPlan(ctx context.Context, partnerID string) (models.Plan, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.Plan{}, err
	}
	return GetPlan(sub.PlanID), nil
}

// UpdateSubscription switches the partner to a new plan, recording the
// transition. Moving from free onto a fixed-price plan issues the first
// invoice.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, partnerID, newPlanID, reason string) (models.SubscriptionChange, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.SubscriptionChange{}, err
	}

	newPlan := GetPlan(newPlanID)
	if newPlan.ID != newPlanID {
		return models.SubscriptionChange{}, fmt.Errorf("unknown plan: %s", newPlanID)
	}

	now := time.Now()
	if reason == "" {
		reason = "manual_upgrade"
	}
	transition := models.PlanTransition{
		From:      sub.PlanID,
		To:        newPlan.ID,
		Reason:    reason,
		Timestamp: now,
	}

	oldPlanID := sub.PlanID
	sub.PlanID = newPlan.ID
	sub.PlanName = newPlan.Name
	sub.Status = models.SubscriptionActive
	sub.StartDate = now
	sub.RenewalDate = utils.AddMonths(now, 1)
	sub.PausedAt = nil
	sub.History = append(sub.History, transition)

	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return models.SubscriptionChange{}, err
	}

	if oldPlanID == FreePlanID && !newPlan.MonthlyPrice.Custom && newPlan.MonthlyPrice.Amount > 0 {
		if _, err := s.createInvoice(ctx, partnerID, newPlan, "subscription_upgrade"); err != nil {
			return models.SubscriptionChange{}, err
		}
	}

	s.cache.Invalidate(ctx, subscriptionAnalyticsCacheKey)

	return models.SubscriptionChange{
		Subscription:    sub,
		Transition:      transition,
		NextBillingDate: sub.RenewalDate,
	}, nil
}

// PauseSubscription keeps plan access but skips billing
func (s *SubscriptionService) PauseSubscription(ctx context.Context, partnerID string) (models.Subscription, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.Subscription{}, err
	}
	if sub.Status == models.SubscriptionPaused {
		return models.Subscription{}, fmt.Errorf("subscription is already paused")
	}

	now := time.Now()
	sub.Status = models.SubscriptionPaused
	sub.PausedAt = &now
	sub.History = append(sub.History, models.PlanTransition{Event: "paused", Timestamp: now})

	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return models.Subscription{}, err
	}
	s.cache.Invalidate(ctx, subscriptionAnalyticsCacheKey)
	return sub, nil
}

// ResumeSubscription reactivates a paused subscription and restarts the
// billing cycle
func (s *SubscriptionService) ResumeSubscription(ctx context.Context, partnerID string) (models.Subscription, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.Subscription{}, err
	}
	if sub.Status != models.SubscriptionPaused {
		return models.Subscription{}, fmt.Errorf("subscription is not paused")
	}

	now := time.Now()
	sub.Status = models.SubscriptionActive
	sub.PausedAt = nil
	sub.RenewalDate = utils.AddMonths(now, 1)
	sub.History = append(sub.History, models.PlanTransition{Event: "resumed", Timestamp: now})

	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return models.Subscription{}, err
	}
	s.cache.Invalidate(ctx, subscriptionAnalyticsCacheKey)
	return sub, nil
}

// CancelSubscription cancels the paid plan and drops the partner back to free
func (s *SubscriptionService) CancelSubscription(ctx context.Context, partnerID, reason string) (models.Subscription, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.Subscription{}, err
	}

	now := time.Now()
	freePlan := GetPlan(FreePlanID)
	sub.Status = models.SubscriptionCancelled
	sub.CancelledAt = &now
	sub.CancelReason = reason
	sub.PlanID = freePlan.ID
	sub.PlanName = freePlan.Name
	sub.History = append(sub.History, models.PlanTransition{Event: "cancelled", Reason: reason, Timestamp: now})

	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return models.Subscription{}, err
	}
	s.cache.Invalidate(ctx, subscriptionAnalyticsCacheKey)
	return sub, nil
}

// IsRenewalDue reports whether an active paid subscription has reached its
// renewal date
func (s *SubscriptionService) IsRenewalDue(ctx context.Context, partnerID string) (bool, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return false, err
	}
	return sub.Status == models.SubscriptionActive &&
		sub.PlanID != FreePlanID &&
		!time.Now().Before(sub.RenewalDate), nil
}

// ProcessRenewal issues the next monthly invoice and advances the renewal
// date. Free and custom-priced plans do not renew through the engine.
func (s *SubscriptionService) ProcessRenewal(ctx context.Context, partnerID string) (models.Invoice, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.Invoice{}, err
	}

	plan := GetPlan(sub.PlanID)
	if plan.MonthlyPrice.Custom || plan.MonthlyPrice.Amount == 0 {
		return models.Invoice{}, fmt.Errorf("plan %s does not require renewal", plan.ID)
	}

	invoice, err := s.createInvoice(ctx, partnerID, plan, "monthly_renewal")
	if err != nil {
		return models.Invoice{}, err
	}

	sub.RenewalDate = utils.AddMonths(time.Now(), 1)
	if err := s.subscriptions.Save(ctx, sub); err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

func (s *SubscriptionService) createInvoice(ctx context.Context, partnerID string, plan models.Plan, invoiceType string) (models.Invoice, error) {
	now := time.Now()
	invoice := models.Invoice{
		ID:        "INV_" + uuid.NewString(),
		PartnerID: partnerID,
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		Amount:    plan.MonthlyPrice.Numeric(),
		Type:      invoiceType,
		Status:    models.InvoicePending,
		IssuedAt:  now,
		DueDate:   now.AddDate(0, 0, 14),
	}
	if err := s.invoices.Insert(ctx, invoice); err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

// MarkInvoicePaid settles a pending invoice
func (s *SubscriptionService) MarkInvoicePaid(ctx context.Context, partnerID, invoiceID, paymentMethod string) (models.Invoice, error) {
	invoice, err := s.invoices.Get(ctx, partnerID, invoiceID)
	if err != nil {
		return models.Invoice{}, err
	}
	if invoice == nil {
		return models.Invoice{}, fmt.Errorf("invoice %s not found", invoiceID)
	}
	if invoice.Status != models.InvoicePending {
		return models.Invoice{}, fmt.Errorf("invoice %s is %s, not pending", invoiceID, invoice.Status)
	}

	now := time.Now()
	invoice.Status = models.InvoicePaid
	invoice.PaidAt = &now
	invoice.PaymentMethod = paymentMethod
	if err := s.invoices.Update(ctx, *invoice); err != nil {
		return models.Invoice{}, err
	}
	return *invoice, nil
}

// GetBillingHistory returns the most recent invoices, newest first
func (s *SubscriptionService) GetBillingHistory(ctx context.Context, partnerID string, limit int) ([]models.Invoice, error) {
	invoices, err := s.invoices.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(invoices) > limit {
		invoices = invoices[:limit]
	}
	return invoices, nil
}

// GetSubscriptionStats summarizes the partner's billing relationship
func (s *SubscriptionService) GetSubscriptionStats(ctx context.Context, partnerID string) (models.SubscriptionStats, error) {
	sub, err := s.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.SubscriptionStats{}, err
	}
	invoices, err := s.invoices.ListByPartner(ctx, partnerID)
	if err != nil {
		return models.SubscriptionStats{}, err
	}

	totalPaid := 0.0
	paidCount := 0
	pendingCount := 0
	for _, invoice := range invoices {
		switch invoice.Status {
		case models.InvoicePaid:
			totalPaid += invoice.Amount
			paidCount++
		case models.InvoicePending:
			pendingCount++
		}
	}

	daysSinceStart := int(time.Since(sub.StartDate).Hours() / 24)
	monthsSinceStart := daysSinceStart / 30

	return models.SubscriptionStats{
		PartnerID:               partnerID,
		CurrentPlan:             sub.PlanID,
		PlanName:                sub.PlanName,
		Status:                  sub.Status,
		DaysSinceStart:          daysSinceStart,
		MonthsSinceStart:        monthsSinceStart,
		TotalPaid:               utils.RoundToCents(totalPaid),
		TotalInvoices:           len(invoices),
		PaidInvoices:            paidCount,
		PendingInvoices:         pendingCount,
		MonthlyRecurringRevenue: GetPlan(sub.PlanID).MonthlyPrice.Numeric(),
		LifetimeValue:           utils.RoundToCents(totalPaid),
	}, nil
}

// GetSubscriptionAnalytics is the cross-partner subscription report (MRR,
// LTV, churn, adoption). Served from cache when fresh.
func (s *SubscriptionService) GetSubscriptionAnalytics(ctx context.Context) (models.SubscriptionAnalytics, error) {
	var cached models.SubscriptionAnalytics
	if s.cache.Get(ctx, subscriptionAnalyticsCacheKey, &cached) {
		return cached, nil
	}

	subs, err := s.subscriptions.ListAll(ctx)
	if err != nil {
		return models.SubscriptionAnalytics{}, err
	}

	analytics := models.SubscriptionAnalytics{TotalPartners: len(subs)}
	type planBucket struct {
		count int
		mrr   float64
		ltv   float64
	}
	byPlan := make(map[string]*planBucket)

	for _, sub := range subs {
		switch sub.Status {
		case models.SubscriptionActive:
			analytics.ActivePartners++
		case models.SubscriptionPaused:
			analytics.PausedPartners++
		case models.SubscriptionCancelled:
			analytics.CancelledPartners++
		}

		stats, err := s.GetSubscriptionStats(ctx, sub.PartnerID)
		if err != nil {
			return models.SubscriptionAnalytics{}, err
		}

		bucket := byPlan[sub.PlanID]
		if bucket == nil {
			bucket = &planBucket{}
			byPlan[sub.PlanID] = bucket
		}
		bucket.count++
		bucket.mrr += stats.MonthlyRecurringRevenue
		bucket.ltv += stats.LifetimeValue

		analytics.TotalMRR += stats.MonthlyRecurringRevenue
		analytics.TotalLifetimeValue += stats.LifetimeValue
	}

	if len(subs) > 0 {
		analytics.AverageLTV = analytics.TotalLifetimeValue / float64(len(subs))
		analytics.ChurnRate = float64(analytics.CancelledPartners) / float64(len(subs))
	}

	for _, plan := range AllPlans() {
		bucket := byPlan[plan.ID]
		if bucket == nil {
			continue
		}
		analytics.AdoptionByPlan = append(analytics.AdoptionByPlan, models.PlanAdoption{
			Plan:       plan.Name,
			Count:      bucket.count,
			Percentage: utils.RoundToCents(float64(bucket.count) / float64(len(subs)) * 100),
			MRR:        bucket.mrr,
			LTV:        bucket.ltv,
		})
	}

	s.cache.Set(ctx, subscriptionAnalyticsCacheKey, analytics)
	return analytics, nil
}
