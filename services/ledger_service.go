package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/repositories"
	"github.com/colleco/partner_backend/utils"
)

const commissionAnalyticsCacheKey = "reports:commission_analytics"

// LedgerService is the append-only commission ledger. Confirmed bookings
// become earned transactions priced at the partner's current plan; the payout
// processor is the only writer that flips them to paid.
type LedgerService struct {
	transactions  repositories.TransactionRepository
	subscriptions *SubscriptionService
	tiers         *TierService
	cache         *ReportCache
}

func NewLedgerService(transactions repositories.TransactionRepository, subscriptions *SubscriptionService, tiers *TierService, cache *ReportCache) *LedgerService {
	return &LedgerService{
		transactions:  transactions,
		subscriptions: subscriptions,
		tiers:         tiers,
		cache:         cache,
	}
}

// RecordTransaction prices a confirmed booking and appends it to the ledger.
// Non-confirmed bookings are rejected; occupancy above 80% earns the plan's
// bonus rate. The booking also feeds the partner's rolling tier metrics.
func (s *LedgerService) RecordTransaction(ctx context.Context, partnerID string, booking models.BookingConfirmation) (models.Transaction, error) {
	status := booking.Status
	if status == "" {
		status = "confirmed"
	}
	if status != "confirmed" {
		return models.Transaction{}, fmt.Errorf("only confirmed bookings generate commission")
	}

	bookingType := booking.Type
	if bookingType == "" {
		bookingType = "accommodation"
	}

	plan, err := s.subscriptions.CurrentPlan(ctx, partnerID)
	if err != nil {
		return models.Transaction{}, err
	}

	breakdown := ComputeCommission(plan, booking.Amount, booking.OccupancyRate > 80)

	txn := models.Transaction{
		ID:            "TXN_" + uuid.NewString(),
		PartnerID:     partnerID,
		BookingID:     booking.BookingID,
		BookingType:   bookingType,
		BookingAmount: booking.Amount,
		BaseRate:      breakdown.BaseRate,
		EffectiveRate: breakdown.EffectiveRate,
		Commission:    breakdown.Commission,
		Status:        models.TransactionEarned,
		RecordedAt:    time.Now(),
	}
	if err := s.transactions.Insert(ctx, txn); err != nil {
		return models.Transaction{}, err
	}

	if _, err := s.tiers.RecordPartnerBooking(ctx, partnerID, booking.Amount); err != nil {
		return models.Transaction{}, err
	}

	s.cache.Invalidate(ctx, commissionAnalyticsCacheKey)
	return txn, nil
}

// GetUnpaid returns the partner's earned, not yet paid transactions
func (s *LedgerService) GetUnpaid(ctx context.Context, partnerID string) ([]models.Transaction, error) {
	all, err := s.transactions.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	unpaid := make([]models.Transaction, 0, len(all))
	for _, txn := range all {
		if txn.Status == models.TransactionEarned {
			unpaid = append(unpaid, txn)
		}
	}
	return unpaid, nil
}

// GetTransactions returns the partner's most recent transactions, newest first
func (s *LedgerService) GetTransactions(ctx context.Context, partnerID string, limit int) ([]models.Transaction, error) {
	txns, err := s.transactions.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}
	return txns, nil
}

// GetEarningsSummary rolls up lifetime and current-month earnings. Net
// earnings are this month's commission less the subscription price, floored
// at zero.
func (s *LedgerService) GetEarningsSummary(ctx context.Context, partnerID string) (models.EarningsSummary, error) {
	txns, err := s.transactions.ListByPartner(ctx, partnerID)
	if err != nil {
		return models.EarningsSummary{}, err
	}
	plan, err := s.subscriptions.CurrentPlan(ctx, partnerID)
	if err != nil {
		return models.EarningsSummary{}, err
	}
	metrics, err := s.tiers.GetPartnerMetrics(ctx, partnerID)
	if err != nil {
		return models.EarningsSummary{}, err
	}

	currentMonth := utils.MonthKey(time.Now())
	summary := models.EarningsSummary{PartnerID: partnerID}
	for _, txn := range txns {
		summary.TotalEarned += txn.Commission
		if utils.MonthKey(txn.RecordedAt) == currentMonth {
			summary.ThisMonthEarned += txn.Commission
			summary.ThisMonthTransactions++
		}
	}

	summary.TotalEarned = utils.RoundToCents(summary.TotalEarned)
	summary.ThisMonthEarned = utils.RoundToCents(summary.ThisMonthEarned)
	summary.SubscriptionCost = plan.MonthlyPrice.Numeric()
	summary.NetEarnings = math.Max(0, utils.RoundToCents(summary.ThisMonthEarned-summary.SubscriptionCost))
	summary.CommissionRate = plan.Commission.Base
	summary.Tier = metrics.Tier
	return summary, nil
}

// GetMonthlyReport buckets the ledger for one calendar month. monthOffset 0
// is the current month, 1 the previous, and so on.
func (s *LedgerService) GetMonthlyReport(ctx context.Context, partnerID string, monthOffset int) (models.MonthlyEarningsReport, error) {
	txns, err := s.transactions.ListByPartner(ctx, partnerID)
	if err != nil {
		return models.MonthlyEarningsReport{}, err
	}
	plan, err := s.subscriptions.CurrentPlan(ctx, partnerID)
	if err != nil {
		return models.MonthlyEarningsReport{}, err
	}

	target := utils.MonthStart(time.Now(), monthOffset)
	monthKey := utils.MonthKey(target)

	report := models.MonthlyEarningsReport{
		Month:     monthKey,
		Year:      target.Year(),
		MonthName: target.Format("January 2006"),
		ByType:    []models.BookingTypeBreakdown{},
	}

	type typeBucket struct {
		count      int
		amount     float64
		commission float64
	}
	byType := make(map[string]*typeBucket)
	typeOrder := []string{}
	rateSum := 0.0

	for _, txn := range txns {
		if utils.MonthKey(txn.RecordedAt) != monthKey {
			continue
		}
		report.Transactions++
		report.TotalBookingAmount += txn.BookingAmount
		report.TotalCommission += txn.Commission
		rateSum += txn.EffectiveRate

		bucket := byType[txn.BookingType]
		if bucket == nil {
			bucket = &typeBucket{}
			byType[txn.BookingType] = bucket
			typeOrder = append(typeOrder, txn.BookingType)
		}
		bucket.count++
		bucket.amount += txn.BookingAmount
		bucket.commission += txn.Commission
	}

	for _, bookingType := range typeOrder {
		bucket := byType[bookingType]
		report.ByType = append(report.ByType, models.BookingTypeBreakdown{
			Type:       bookingType,
			Count:      bucket.count,
			Amount:     bucket.amount,
			Commission: bucket.commission,
			Average:    utils.RoundToCents(bucket.amount / float64(bucket.count)),
		})
	}

	report.TotalBookingAmount = utils.RoundToCents(report.TotalBookingAmount)
	report.TotalCommission = utils.RoundToCents(report.TotalCommission)
	report.SubscriptionCost = plan.MonthlyPrice.Numeric()
	report.NetEarnings = utils.RoundToCents(report.TotalCommission - report.SubscriptionCost)
	if report.Transactions > 0 {
		report.AverageCommissionRate = utils.RoundToCents(rateSum / float64(report.Transactions) * 100)
	}
	return report, nil
}

// GetYearToDateEarnings aggregates the current calendar year, netting out the
// subscription cost estimated from months active
func (s *LedgerService) GetYearToDateEarnings(ctx context.Context, partnerID string) (models.YearToDateEarnings, error) {
	txns, err := s.transactions.ListByPartner(ctx, partnerID)
	if err != nil {
		return models.YearToDateEarnings{}, err
	}
	sub, err := s.subscriptions.GetPartnerSubscription(ctx, partnerID)
	if err != nil {
		return models.YearToDateEarnings{}, err
	}
	plan := GetPlan(sub.PlanID)

	year := time.Now().Year()
	ytd := models.YearToDateEarnings{Year: year}
	rateSum := 0.0
	for _, txn := range txns {
		if txn.RecordedAt.Year() != year {
			continue
		}
		ytd.Transactions++
		ytd.TotalBookingAmount += txn.BookingAmount
		ytd.TotalCommission += txn.Commission
		rateSum += txn.EffectiveRate
	}

	monthsActive := int(math.Ceil(time.Since(sub.StartDate).Hours() / 24 / 30))
	if monthsActive < 1 {
		monthsActive = 1
	}
	monthlyCost := plan.MonthlyPrice.Numeric()

	ytd.TotalBookingAmount = utils.RoundToCents(ytd.TotalBookingAmount)
	ytd.TotalCommission = utils.RoundToCents(ytd.TotalCommission)
	ytd.TotalSubscriptionCost = utils.RoundToCents(monthlyCost * float64(monthsActive))
	ytd.NetEarnings = utils.RoundToCents(ytd.TotalCommission - ytd.TotalSubscriptionCost)
	ytd.AverageMonthlyEarnings = utils.RoundToCents(ytd.TotalCommission / float64(monthsActive))
	if ytd.Transactions > 0 {
		ytd.AverageBookingValue = utils.RoundToCents(ytd.TotalBookingAmount / float64(ytd.Transactions))
		ytd.AverageCommissionRate = utils.RoundToCents(rateSum / float64(ytd.Transactions) * 100)
	}
	return ytd, nil
}

// GetCommissionAnalytics is the cross-partner commission report with the
// top-10 partner leaderboard. Served from cache when fresh.
func (s *LedgerService) GetCommissionAnalytics(ctx context.Context) (models.CommissionAnalytics, error) {
	var cached models.CommissionAnalytics
	if s.cache.Get(ctx, commissionAnalyticsCacheKey, &cached) {
		return cached, nil
	}

	all, err := s.transactions.ListAll(ctx)
	if err != nil {
		return models.CommissionAnalytics{}, err
	}

	type partnerBucket struct {
		transactions  int
		commission    float64
		bookingAmount float64
	}
	byPartner := make(map[string]*partnerBucket)
	analytics := models.CommissionAnalytics{TopPartners: []models.PartnerCommissionTotal{}}

	for _, txn := range all {
		bucket := byPartner[txn.PartnerID]
		if bucket == nil {
			bucket = &partnerBucket{}
			byPartner[txn.PartnerID] = bucket
		}
		bucket.transactions++
		bucket.commission += txn.Commission
		bucket.bookingAmount += txn.BookingAmount

		analytics.TotalBookings++
		analytics.TotalCommission += txn.Commission
		analytics.TotalBookingAmount += txn.BookingAmount
	}

	for partnerID, bucket := range byPartner {
		analytics.TopPartners = append(analytics.TopPartners, models.PartnerCommissionTotal{
			PartnerID:                   partnerID,
			Transactions:                bucket.transactions,
			TotalCommission:             utils.RoundToCents(bucket.commission),
			TotalBookingAmount:          utils.RoundToCents(bucket.bookingAmount),
			AverageCommissionPerBooking: utils.RoundToCents(bucket.commission / float64(bucket.transactions)),
		})
	}
	sort.Slice(analytics.TopPartners, func(i, j int) bool {
		return analytics.TopPartners[i].TotalCommission > analytics.TopPartners[j].TotalCommission
	})
	if len(analytics.TopPartners) > 10 {
		analytics.TopPartners = analytics.TopPartners[:10]
	}

	analytics.ActivePartners = len(byPartner)
	analytics.TotalCommission = utils.RoundToCents(analytics.TotalCommission)
	analytics.TotalBookingAmount = utils.RoundToCents(analytics.TotalBookingAmount)
	if analytics.TotalBookings > 0 {
		analytics.AverageCommissionPerBooking = utils.RoundToCents(analytics.TotalCommission / float64(analytics.TotalBookings))
	}

	s.cache.Set(ctx, commissionAnalyticsCacheKey, analytics)
	return analytics, nil
}
