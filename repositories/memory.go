package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/colleco/partner_backend/models"
)

// In-memory implementations of the repository ports, used by tests and
// available for local development without a database.

type MemorySubscriptionRepository struct {
	mu   sync.RWMutex
	subs map[string]models.Subscription
}

func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{subs: make(map[string]models.Subscription)}
}

func (r *MemorySubscriptionRepository) Get(_ context.Context, partnerID string) (*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[partnerID]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (r *MemorySubscriptionRepository) Save(_ context.Context, sub models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.PartnerID] = sub
	return nil
}

func (r *MemorySubscriptionRepository) ListAll(_ context.Context) ([]models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]models.Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].PartnerID < subs[j].PartnerID })
	return subs, nil
}

type MemoryTransactionRepository struct {
	mu   sync.RWMutex
	txns map[string][]models.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{txns: make(map[string][]models.Transaction)}
}

func (r *MemoryTransactionRepository) Insert(_ context.Context, txn models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns[txn.PartnerID] = append(r.txns[txn.PartnerID], txn)
	return nil
}

func (r *MemoryTransactionRepository) ListByPartner(_ context.Context, partnerID string) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	txns := append([]models.Transaction(nil), r.txns[partnerID]...)
	sort.Slice(txns, func(i, j int) bool { return txns[i].RecordedAt.After(txns[j].RecordedAt) })
	return txns, nil
}

func (r *MemoryTransactionRepository) ListAll(_ context.Context) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []models.Transaction
	for _, txns := range r.txns {
		all = append(all, txns...)
	}
	return all, nil
}

func (r *MemoryTransactionRepository) MarkPaid(_ context.Context, partnerID string, ids []string, payoutID string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	txns := r.txns[partnerID]
	for i := range txns {
		if idSet[txns[i].ID] && txns[i].Status == models.TransactionEarned {
			txns[i].Status = models.TransactionPaid
			paid := paidAt
			txns[i].PaidOutAt = &paid
			txns[i].PayoutID = payoutID
		}
	}
	return nil
}

type MemoryPayoutRepository struct {
	mu      sync.RWMutex
	payouts map[string][]models.Payout
}

func NewMemoryPayoutRepository() *MemoryPayoutRepository {
	return &MemoryPayoutRepository{payouts: make(map[string][]models.Payout)}
}

func (r *MemoryPayoutRepository) Insert(_ context.Context, payout models.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payouts[payout.PartnerID] = append(r.payouts[payout.PartnerID], payout)
	return nil
}

func (r *MemoryPayoutRepository) Update(_ context.Context, payout models.Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payouts := r.payouts[payout.PartnerID]
	for i := range payouts {
		if payouts[i].ID == payout.ID {
			payouts[i] = payout
			return nil
		}
	}
	return fmt.Errorf("payout %s not found", payout.ID)
}

func (r *MemoryPayoutRepository) Get(_ context.Context, partnerID, payoutID string) (*models.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, payout := range r.payouts[partnerID] {
		if payout.ID == payoutID {
			p := payout
			return &p, nil
		}
	}
	return nil, nil
}

func (r *MemoryPayoutRepository) ListByPartner(_ context.Context, partnerID string) ([]models.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payouts := append([]models.Payout(nil), r.payouts[partnerID]...)
	sort.Slice(payouts, func(i, j int) bool { return payouts[i].RequestedAt.After(payouts[j].RequestedAt) })
	return payouts, nil
}

func (r *MemoryPayoutRepository) ListAll(_ context.Context) ([]models.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []models.Payout
	for _, payouts := range r.payouts {
		all = append(all, payouts...)
	}
	return all, nil
}

type MemoryPayoutMethodRepository struct {
	mu      sync.RWMutex
	methods map[string][]models.PayoutMethod
}

func NewMemoryPayoutMethodRepository() *MemoryPayoutMethodRepository {
	return &MemoryPayoutMethodRepository{methods: make(map[string][]models.PayoutMethod)}
}

func (r *MemoryPayoutMethodRepository) Insert(_ context.Context, method models.PayoutMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	methods := r.methods[method.PartnerID]
	if method.IsDefault {
		for i := range methods {
			methods[i].IsDefault = false
		}
	}
	r.methods[method.PartnerID] = append(methods, method)
	return nil
}

func (r *MemoryPayoutMethodRepository) ListByPartner(_ context.Context, partnerID string) ([]models.PayoutMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	methods := append([]models.PayoutMethod(nil), r.methods[partnerID]...)
	sort.Slice(methods, func(i, j int) bool { return methods[i].AddedAt.Before(methods[j].AddedAt) })
	return methods, nil
}

func (r *MemoryPayoutMethodRepository) SetDefault(_ context.Context, partnerID, methodID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	methods := r.methods[partnerID]
	found := false
	for i := range methods {
		methods[i].IsDefault = methods[i].ID == methodID
		if methods[i].IsDefault {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("payout method %s not found", methodID)
	}
	return nil
}

type MemoryMetricsRepository struct {
	mu      sync.RWMutex
	metrics map[string]models.PartnerMetrics
}

func NewMemoryMetricsRepository() *MemoryMetricsRepository {
	return &MemoryMetricsRepository{metrics: make(map[string]models.PartnerMetrics)}
}

func (r *MemoryMetricsRepository) Get(_ context.Context, partnerID string) (*models.PartnerMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	metrics, ok := r.metrics[partnerID]
	if !ok {
		return nil, nil
	}
	return &metrics, nil
}

func (r *MemoryMetricsRepository) Save(_ context.Context, metrics models.PartnerMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics[metrics.PartnerID] = metrics
	return nil
}

type MemoryInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string][]models.Invoice
}

func NewMemoryInvoiceRepository() *MemoryInvoiceRepository {
	return &MemoryInvoiceRepository{invoices: make(map[string][]models.Invoice)}
}

func (r *MemoryInvoiceRepository) Insert(_ context.Context, invoice models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[invoice.PartnerID] = append(r.invoices[invoice.PartnerID], invoice)
	return nil
}

func (r *MemoryInvoiceRepository) Update(_ context.Context, invoice models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoices := r.invoices[invoice.PartnerID]
	for i := range invoices {
		if invoices[i].ID == invoice.ID {
			invoices[i] = invoice
			return nil
		}
	}
	return fmt.Errorf("invoice %s not found", invoice.ID)
}

func (r *MemoryInvoiceRepository) Get(_ context.Context, partnerID, invoiceID string) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, invoice := range r.invoices[partnerID] {
		if invoice.ID == invoiceID {
			inv := invoice
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *MemoryInvoiceRepository) ListByPartner(_ context.Context, partnerID string) ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoices := append([]models.Invoice(nil), r.invoices[partnerID]...)
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].IssuedAt.After(invoices[j].IssuedAt) })
	return invoices, nil
}
