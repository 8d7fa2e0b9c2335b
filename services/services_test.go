package services

import (
	"math"
	"sync"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/repositories"
)

// testEngine wires the full service graph over the in-memory repositories
type testEngine struct {
	subscriptions *SubscriptionService
	tiers         *TierService
	ledger        *LedgerService
	payouts       *PayoutService
	analytics     *AnalyticsService
	roi           *ROIService
	notifier      *notifierStub
}

func newTestEngine() *testEngine {
	return newTestEngineWithTransactions(repositories.NewMemoryTransactionRepository())
}

// newTestEngineWithTransactions lets a test substitute the transaction store,
// e.g. one whose writes fail
func newTestEngineWithTransactions(transactions repositories.TransactionRepository) *testEngine {
	locks := NewPartnerLocks()
	cache := NewReportCache(nil)
	notifier := &notifierStub{}

	tiers := NewTierService(repositories.NewMemoryMetricsRepository(), locks, notifier)
	subscriptions := NewSubscriptionService(repositories.NewMemorySubscriptionRepository(), repositories.NewMemoryInvoiceRepository(), cache)
	ledger := NewLedgerService(transactions, subscriptions, tiers, cache)
	payouts := NewPayoutService(repositories.NewMemoryPayoutRepository(), repositories.NewMemoryPayoutMethodRepository(), ledger, subscriptions, locks, notifier, cache)

	return &testEngine{
		subscriptions: subscriptions,
		tiers:         tiers,
		ledger:        ledger,
		payouts:       payouts,
		analytics:     NewAnalyticsService(tiers),
		roi:           NewROIService(subscriptions, tiers),
		notifier:      notifier,
	}
}

// notifierStub records notifications instead of delivering them
type notifierStub struct {
	mu           sync.Mutex
	payoutEvents []models.Payout
	tierUpgrades []tierUpgradeEvent
}

type tierUpgradeEvent struct {
	partnerID    string
	previousTier string
	newTier      string
}

func (n *notifierStub) NotifyPayoutStatus(partnerID string, payout models.Payout) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payoutEvents = append(n.payoutEvents, payout)
}

func (n *notifierStub) NotifyTierUpgrade(partnerID, previousTier, newTier string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tierUpgrades = append(n.tierUpgrades, tierUpgradeEvent{partnerID: partnerID, previousTier: previousTier, newTier: newTier})
}

func (n *notifierStub) upgrades() []tierUpgradeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]tierUpgradeEvent(nil), n.tierUpgrades...)
}

// near compares floats to within a cent-scale epsilon
func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
