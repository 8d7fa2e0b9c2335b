// Package repositories holds the storage ports for the partner monetization
// engine. Each collection is keyed by partner id; services receive the
// interfaces so tests can substitute the in-memory implementations while
// production wires MongoDB.
package repositories

import (
	"context"
	"time"

	"github.com/colleco/partner_backend/models"
)

// SubscriptionRepository stores the single subscription record per partner
type SubscriptionRepository interface {
	// Get returns nil when the partner has no subscription yet
	Get(ctx context.Context, partnerID string) (*models.Subscription, error)
	Save(ctx context.Context, sub models.Subscription) error
	ListAll(ctx context.Context) ([]models.Subscription, error)
}

// TransactionRepository stores the append-only commission ledger
type TransactionRepository interface {
	Insert(ctx context.Context, txn models.Transaction) error
	ListByPartner(ctx context.Context, partnerID string) ([]models.Transaction, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
	// MarkPaid flips the given transactions from earned to paid. It is the
	// only mutation the ledger permits after insert.
	MarkPaid(ctx context.Context, partnerID string, ids []string, payoutID string, paidAt time.Time) error
}

// PayoutRepository stores payout records
type PayoutRepository interface {
	Insert(ctx context.Context, payout models.Payout) error
	Update(ctx context.Context, payout models.Payout) error
	Get(ctx context.Context, partnerID, payoutID string) (*models.Payout, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.Payout, error)
	ListAll(ctx context.Context) ([]models.Payout, error)
}

// PayoutMethodRepository stores partner bank accounts
type PayoutMethodRepository interface {
	Insert(ctx context.Context, method models.PayoutMethod) error
	ListByPartner(ctx context.Context, partnerID string) ([]models.PayoutMethod, error)
	// SetDefault marks the given method default and clears the flag on all
	// the partner's other methods
	SetDefault(ctx context.Context, partnerID, methodID string) error
}

// MetricsRepository stores the per-partner rolling metrics document
type MetricsRepository interface {
	// Get returns nil when the partner has no metrics yet
	Get(ctx context.Context, partnerID string) (*models.PartnerMetrics, error)
	Save(ctx context.Context, metrics models.PartnerMetrics) error
}

// InvoiceRepository stores subscription invoices
type InvoiceRepository interface {
	Insert(ctx context.Context, invoice models.Invoice) error
	Update(ctx context.Context, invoice models.Invoice) error
	Get(ctx context.Context, partnerID, invoiceID string) (*models.Invoice, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.Invoice, error)
}
