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

const payoutStatisticsCacheKey = "reports:payout_statistics"

// PayoutService settles earned commission to partner bank accounts. A payout
// snapshots the unpaid transactions it covers at initiation; while it is
// pending or processing those transactions are claimed and excluded from the
// next payout, so settlement is at most once even across retries.
type PayoutService struct {
	payouts       repositories.PayoutRepository
	methods       repositories.PayoutMethodRepository
	ledger        *LedgerService
	subscriptions *SubscriptionService
	locks         *PartnerLocks
	notifier      Notifier
	cache         *ReportCache
}

func NewPayoutService(
	payouts repositories.PayoutRepository,
	methods repositories.PayoutMethodRepository,
	ledger *LedgerService,
	subscriptions *SubscriptionService,
	locks *PartnerLocks,
	notifier Notifier,
	cache *ReportCache,
) *PayoutService {
	return &PayoutService{
		payouts:       payouts,
		methods:       methods,
		ledger:        ledger,
		subscriptions: subscriptions,
		locks:         locks,
		notifier:      notifier,
		cache:         cache,
	}
}

// AddPayoutMethod registers a bank account. The first method a partner adds
// becomes the default.
func (s *PayoutService) AddPayoutMethod(ctx context.Context, partnerID string, req models.AddPayoutMethodRequest) (models.PayoutMethod, error) {
	existing, err := s.methods.ListByPartner(ctx, partnerID)
	if err != nil {
		return models.PayoutMethod{}, err
	}

	method := models.PayoutMethod{
		ID:            "METHOD_" + uuid.NewString(),
		PartnerID:     partnerID,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		IsDefault:     req.IsDefault || len(existing) == 0,
		AddedAt:       time.Now(),
	}
	if err := s.methods.Insert(ctx, method); err != nil {
		return models.PayoutMethod{}, err
	}
	return method, nil
}

// GetPayoutMethods lists the partner's registered bank accounts
func (s *PayoutService) GetPayoutMethods(ctx context.Context, partnerID string) ([]models.PayoutMethod, error) {
	return s.methods.ListByPartner(ctx, partnerID)
}

// SetDefaultPayoutMethod marks one method default and clears the rest
func (s *PayoutService) SetDefaultPayoutMethod(ctx context.Context, partnerID, methodID string) error {
	return s.methods.SetDefault(ctx, partnerID, methodID)
}

// resolvePayoutMethod picks the requested method, falling back to the default
// and then to the first registered one. Returns nil when the partner has no
// methods.
func (s *PayoutService) resolvePayoutMethod(ctx context.Context, partnerID, methodID string) (*models.PayoutMethod, error) {
	methods, err := s.methods.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return nil, nil
	}
	if methodID != "" {
		for i := range methods {
			if methods[i].ID == methodID {
				return &methods[i], nil
			}
		}
		return nil, nil
	}
	for i := range methods {
		if methods[i].IsDefault {
			return &methods[i], nil
		}
	}
	return &methods[0], nil
}

// availableTransactions returns the earned transactions not claimed by a
// pending or processing payout
func (s *PayoutService) availableTransactions(ctx context.Context, partnerID string) ([]models.Transaction, error) {
	unpaid, err := s.ledger.GetUnpaid(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	payouts, err := s.payouts.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	claimed := make(map[string]bool)
	for _, payout := range payouts {
		if payout.Status == models.PayoutPending || payout.Status == models.PayoutProcessing {
			for _, id := range payout.TransactionIDs {
				claimed[id] = true
			}
		}
	}

	available := make([]models.Transaction, 0, len(unpaid))
	for _, txn := range unpaid {
		if !claimed[txn.ID] {
			available = append(available, txn)
		}
	}
	return available, nil
}

// GetUpcomingPayoutAmount reports what the partner would receive if a payout
// were initiated now: unclaimed earned commission less the pending
// subscription charge, floored at zero.
func (s *PayoutService) GetUpcomingPayoutAmount(ctx context.Context, partnerID string) (models.UpcomingPayout, error) {
	available, err := s.availableTransactions(ctx, partnerID)
	if err != nil {
		return models.UpcomingPayout{}, err
	}
	plan, err := s.subscriptions.CurrentPlan(ctx, partnerID)
	if err != nil {
		return models.UpcomingPayout{}, err
	}

	totalEarned := 0.0
	for _, txn := range available {
		totalEarned += txn.Commission
	}
	pendingCharges := plan.MonthlyPrice.Numeric()
	payoutAmount := math.Max(0, totalEarned-pendingCharges)

	return models.UpcomingPayout{
		TotalEarned:            utils.RoundToCents(totalEarned),
		PendingCharges:         pendingCharges,
		PayoutAmount:           utils.RoundToCents(payoutAmount),
		Transactions:           len(available),
		MinimumPayoutThreshold: models.MinimumPayoutThreshold,
		IsReadyForPayout:       payoutAmount >= models.MinimumPayoutThreshold,
	}, nil
}

// InitiatePayout creates a pending payout over the partner's unclaimed earned
// transactions. Below-threshold amounts and missing payout methods are
// business failures reported in the result, not errors. The partner lock
// makes the check-then-snapshot atomic, so two concurrent initiations never
// claim the same transaction.
func (s *PayoutService) InitiatePayout(ctx context.Context, partnerID string, req models.InitiatePayoutRequest) (models.PayoutResult, error) {
	lock := s.locks.Lock(partnerID)
	defer lock.Unlock()

	upcoming, err := s.GetUpcomingPayoutAmount(ctx, partnerID)
	if err != nil {
		return models.PayoutResult{}, err
	}

	if upcoming.PayoutAmount < upcoming.MinimumPayoutThreshold {
		return models.PayoutResult{
			Success:   false,
			Reason:    fmt.Sprintf("Minimum payout threshold is R%.0f. Current amount: R%.2f", upcoming.MinimumPayoutThreshold, upcoming.PayoutAmount),
			Current:   upcoming.PayoutAmount,
			Threshold: upcoming.MinimumPayoutThreshold,
		}, nil
	}

	method, err := s.resolvePayoutMethod(ctx, partnerID, req.MethodID)
	if err != nil {
		return models.PayoutResult{}, err
	}
	if method == nil {
		return models.PayoutResult{
			Success: false,
			Reason:  "No payout method configured. Please add a bank account or payment method.",
		}, nil
	}

	available, err := s.availableTransactions(ctx, partnerID)
	if err != nil {
		return models.PayoutResult{}, err
	}
	ids := make([]string, len(available))
	for i, txn := range available {
		ids[i] = txn.ID
	}

	now := time.Now()
	payout := models.Payout{
		ID:                    "PAYOUT_" + uuid.NewString(),
		PartnerID:             partnerID,
		Amount:                upcoming.PayoutAmount,
		GrossAmount:           upcoming.TotalEarned,
		SubscriptionDeduction: upcoming.PendingCharges,
		TransactionCount:      len(ids),
		TransactionIDs:        ids,
		PayoutMethod:          *method,
		Status:                models.PayoutPending,
		RequestedAt:           now,
	}
	if err := s.payouts.Insert(ctx, payout); err != nil {
		return models.PayoutResult{}, err
	}

	s.cache.Invalidate(ctx, payoutStatisticsCacheKey)
	if s.notifier != nil {
		s.notifier.NotifyPayoutStatus(partnerID, payout)
	}

	delivery := utils.AddBusinessDays(now, 2)
	return models.PayoutResult{
		Success:           true,
		Payout:            &payout,
		EstimatedDelivery: &delivery,
	}, nil
}

// ProcessPayout moves a pending payout to processing
func (s *PayoutService) ProcessPayout(ctx context.Context, partnerID, payoutID string) (models.Payout, error) {
	lock := s.locks.Lock(partnerID)
	defer lock.Unlock()

	payout, err := s.getPayout(ctx, partnerID, payoutID)
	if err != nil {
		return models.Payout{}, err
	}
	if payout.Status != models.PayoutPending {
		return models.Payout{}, fmt.Errorf("payout %s is %s, cannot process", payoutID, payout.Status)
	}

	now := time.Now()
	payout.Status = models.PayoutProcessing
	payout.ProcessedAt = &now
	if err := s.payouts.Update(ctx, *payout); err != nil {
		return models.Payout{}, err
	}

	s.cache.Invalidate(ctx, payoutStatisticsCacheKey)
	if s.notifier != nil {
		s.notifier.NotifyPayoutStatus(partnerID, *payout)
	}
	return *payout, nil
}

// CompletePayout settles a processing payout, flipping its snapshot of
// transactions to paid. The transactions are marked first: if that write
// fails the payout stays processing and keeps its claim, so a retry settles
// the same snapshot instead of a failed commit releasing it for double
// payment.
func (s *PayoutService) CompletePayout(ctx context.Context, partnerID, payoutID, reference string) (models.Payout, error) {
	lock := s.locks.Lock(partnerID)
	defer lock.Unlock()

	payout, err := s.getPayout(ctx, partnerID, payoutID)
	if err != nil {
		return models.Payout{}, err
	}
	if payout.Status != models.PayoutProcessing {
		return models.Payout{}, fmt.Errorf("payout %s is %s, cannot complete", payoutID, payout.Status)
	}

	now := time.Now()
	if err := s.ledger.transactions.MarkPaid(ctx, partnerID, payout.TransactionIDs, payout.ID, now); err != nil {
		return models.Payout{}, err
	}
	payout.Status = models.PayoutCompleted
	payout.CompletedAt = &now
	payout.Reference = reference
	if err := s.payouts.Update(ctx, *payout); err != nil {
		return models.Payout{}, err
	}

	s.cache.Invalidate(ctx, payoutStatisticsCacheKey)
	if s.notifier != nil {
		s.notifier.NotifyPayoutStatus(partnerID, *payout)
	}
	return *payout, nil
}

// FailPayout marks a pending or processing payout failed. Its transactions
// stay earned and become available to the next initiation.
func (s *PayoutService) FailPayout(ctx context.Context, partnerID, payoutID, reason string) (models.Payout, error) {
	lock := s.locks.Lock(partnerID)
	defer lock.Unlock()

	payout, err := s.getPayout(ctx, partnerID, payoutID)
	if err != nil {
		return models.Payout{}, err
	}
	if payout.Status != models.PayoutPending && payout.Status != models.PayoutProcessing {
		return models.Payout{}, fmt.Errorf("payout %s is %s, cannot fail", payoutID, payout.Status)
	}

	now := time.Now()
	payout.Status = models.PayoutFailed
	payout.FailedAt = &now
	payout.FailureReason = reason
	if err := s.payouts.Update(ctx, *payout); err != nil {
		return models.Payout{}, err
	}

	s.cache.Invalidate(ctx, payoutStatisticsCacheKey)
	if s.notifier != nil {
		s.notifier.NotifyPayoutStatus(partnerID, *payout)
	}
	return *payout, nil
}

func (s *PayoutService) getPayout(ctx context.Context, partnerID, payoutID string) (*models.Payout, error) {
	payout, err := s.payouts.Get(ctx, partnerID, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, fmt.Errorf("payout %s not found", payoutID)
	}
	return payout, nil
}

// GetPayout returns one payout record
func (s *PayoutService) GetPayout(ctx context.Context, partnerID, payoutID string) (models.Payout, error) {
	payout, err := s.getPayout(ctx, partnerID, payoutID)
	if err != nil {
		return models.Payout{}, err
	}
	return *payout, nil
}

// GetPayoutHistory returns the most recent payouts, newest first
func (s *PayoutService) GetPayoutHistory(ctx context.Context, partnerID string, limit int) ([]models.Payout, error) {
	payouts, err := s.payouts.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(payouts) > limit {
		payouts = payouts[:limit]
	}
	return payouts, nil
}

// GetPayoutSummary rolls up the partner's payout history
func (s *PayoutService) GetPayoutSummary(ctx context.Context, partnerID string) (models.PayoutSummary, error) {
	payouts, err := s.payouts.ListByPartner(ctx, partnerID)
	if err != nil {
		return models.PayoutSummary{}, err
	}

	summary := models.PayoutSummary{PartnerID: partnerID}
	for _, payout := range payouts {
		switch payout.Status {
		case models.PayoutCompleted:
			summary.CompletedPayouts++
			summary.TotalPaidOut += payout.Amount
			if summary.LastPayoutDate == nil && payout.CompletedAt != nil {
				summary.LastPayoutDate = payout.CompletedAt
			}
		case models.PayoutPending:
			summary.PendingPayouts++
			summary.PendingAmount += payout.Amount
		case models.PayoutFailed:
			summary.FailedPayouts++
		}
	}

	summary.TotalPaidOut = utils.RoundToCents(summary.TotalPaidOut)
	summary.PendingAmount = utils.RoundToCents(summary.PendingAmount)
	if summary.CompletedPayouts > 0 {
		summary.AveragePayoutAmount = utils.RoundToCents(summary.TotalPaidOut / float64(summary.CompletedPayouts))
	}
	return summary, nil
}

// GetPayoutStatistics is the cross-partner admin rollup. Served from cache
// when fresh.
func (s *PayoutService) GetPayoutStatistics(ctx context.Context) (models.PayoutStatistics, error) {
	var cached models.PayoutStatistics
	if s.cache.Get(ctx, payoutStatisticsCacheKey, &cached) {
		return cached, nil
	}

	all, err := s.payouts.ListAll(ctx)
	if err != nil {
		return models.PayoutStatistics{}, err
	}

	stats := models.PayoutStatistics{}
	for _, payout := range all {
		switch payout.Status {
		case models.PayoutCompleted:
			stats.TotalPaidOut += payout.Amount
			stats.PayoutsCompleted++
		case models.PayoutPending:
			stats.TotalPending += payout.Amount
			stats.PayoutsPending++
		case models.PayoutFailed:
			stats.TotalFailed += payout.Amount
			stats.PayoutsFailed++
		}
	}

	stats.TotalPaidOut = utils.RoundToCents(stats.TotalPaidOut)
	stats.TotalPending = utils.RoundToCents(stats.TotalPending)
	stats.TotalFailed = utils.RoundToCents(stats.TotalFailed)
	stats.TotalPayouts = stats.PayoutsCompleted + stats.PayoutsPending + stats.PayoutsFailed
	if stats.PayoutsCompleted > 0 {
		stats.AveragePayoutAmount = utils.RoundToCents(stats.TotalPaidOut / float64(stats.PayoutsCompleted))
	}

	s.cache.Set(ctx, payoutStatisticsCacheKey, stats)
	return stats, nil
}

// GeneratePayoutReport covers all payouts whose completion (or request) time
// falls in [start, end], newest first
func (s *PayoutService) GeneratePayoutReport(ctx context.Context, start, end time.Time) (models.PayoutReport, error) {
	all, err := s.payouts.ListAll(ctx)
	if err != nil {
		return models.PayoutReport{}, err
	}

	report := models.PayoutReport{
		Start:    start,
		End:      end,
		ByStatus: map[string]models.PayoutReportBucket{},
		Payouts:  []models.Payout{},
	}

	effectiveTime := func(p models.Payout) time.Time {
		if p.CompletedAt != nil {
			return *p.CompletedAt
		}
		return p.RequestedAt
	}

	for _, payout := range all {
		at := effectiveTime(payout)
		if at.Before(start) || at.After(end) {
			continue
		}
		report.Payouts = append(report.Payouts, payout)
		bucket := report.ByStatus[payout.Status]
		bucket.Count++
		bucket.Amount = utils.RoundToCents(bucket.Amount + payout.Amount)
		report.ByStatus[payout.Status] = bucket
		if payout.Status == models.PayoutCompleted {
			report.TotalAmount += payout.Amount
		}
	}

	sort.Slice(report.Payouts, func(i, j int) bool {
		return effectiveTime(report.Payouts[i]).After(effectiveTime(report.Payouts[j]))
	})

	report.TotalPayouts = len(report.Payouts)
	report.TotalAmount = utils.RoundToCents(report.TotalAmount)
	return report, nil
}
