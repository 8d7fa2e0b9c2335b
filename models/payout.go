package models

import "time"

// Payout statuses. Transitions are monotonic:
// pending -> processing -> completed|failed, both terminal.
const (
	PayoutPending    = "pending"
	PayoutProcessing = "processing"
	PayoutCompleted  = "completed"
	PayoutFailed     = "failed"
)

// MinimumPayoutThreshold is the smallest amount the engine will pay out
const MinimumPayoutThreshold = 100.0

// PayoutMethod is a partner bank account payouts are sent to. At most one
// method per partner is the default.
type PayoutMethod struct {
	ID            string    `json:"id" bson:"_id"`
	PartnerID     string    `json:"partnerId" bson:"partnerId"`
	BankName      string    `json:"bankName" bson:"bankName"`
	AccountNumber string    `json:"accountNumber" bson:"accountNumber"`
	AccountHolder string    `json:"accountHolder" bson:"accountHolder"`
	IsDefault     bool      `json:"isDefault" bson:"isDefault"`
	AddedAt       time.Time `json:"addedAt" bson:"addedAt"`
}

// Payout is a batched disbursement of earned, unpaid commission. The
// referenced transactions are claimed while the payout is pending or
// processing and flip to paid when it completes.
type Payout struct {
	ID                    string       `json:"id" bson:"_id"`
	PartnerID             string       `json:"partnerId" bson:"partnerId"`
	Amount                float64      `json:"amount" bson:"amount"`
	GrossAmount           float64      `json:"grossAmount" bson:"grossAmount"`
	SubscriptionDeduction float64      `json:"subscriptionDeduction" bson:"subscriptionDeduction"`
	TransactionCount      int          `json:"transactionCount" bson:"transactionCount"`
	TransactionIDs        []string     `json:"transactionIds" bson:"transactionIds"`
	PayoutMethod          PayoutMethod `json:"payoutMethod" bson:"payoutMethod"`
	Status                string       `json:"status" bson:"status"`
	RequestedAt           time.Time    `json:"requestedAt" bson:"requestedAt"`
	ProcessedAt           *time.Time   `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
	CompletedAt           *time.Time   `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	FailedAt              *time.Time   `json:"failedAt,omitempty" bson:"failedAt,omitempty"`
	FailureReason         string       `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	Reference             string       `json:"reference,omitempty" bson:"reference,omitempty"`
}

// UpcomingPayout reports what a partner would receive if a payout were
// initiated now. The field set is part of the reporting contract.
type UpcomingPayout struct {
	TotalEarned            float64 `json:"totalEarned"`
	PendingCharges         float64 `json:"pendingCharges"`
	PayoutAmount           float64 `json:"payoutAmount"`
	Transactions           int     `json:"transactions"`
	MinimumPayoutThreshold float64 `json:"minimumPayoutThreshold"`
	IsReadyForPayout       bool    `json:"isReadyForPayout"`
}

// PayoutResult is the structured outcome of a payout initiation. Business
// failures (below threshold, no method) are reported here, never as errors.
type PayoutResult struct {
	Success           bool       `json:"success"`
	Reason            string     `json:"reason,omitempty"`
	Current           float64    `json:"current,omitempty"`
	Threshold         float64    `json:"threshold,omitempty"`
	Payout            *Payout    `json:"payout,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// AddPayoutMethodRequest is the request body for registering a bank account
type AddPayoutMethodRequest struct {
	BankName      string `json:"bankName" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	AccountHolder string `json:"accountHolder" validate:"required"`
	IsDefault     bool   `json:"isDefault"`
}

// InitiatePayoutRequest optionally pins a specific payout method
type InitiatePayoutRequest struct {
	MethodID string `json:"methodId,omitempty"`
}

// PayoutSummary is the partner-facing payout history rollup
type PayoutSummary struct {
	PartnerID           string     `json:"partnerId"`
	TotalPaidOut        float64    `json:"totalPaidOut"`
	PendingPayouts      int        `json:"pendingPayouts"`
	PendingAmount       float64    `json:"pendingAmount"`
	CompletedPayouts    int        `json:"completedPayouts"`
	FailedPayouts       int        `json:"failedPayouts"`
	AveragePayoutAmount float64    `json:"averagePayoutAmount"`
	LastPayoutDate      *time.Time `json:"lastPayoutDate,omitempty"`
}

// PayoutStatistics is the cross-partner admin view
type PayoutStatistics struct {
	TotalPaidOut        float64 `json:"totalPaidOut"`
	TotalPending        float64 `json:"totalPending"`
	TotalFailed         float64 `json:"totalFailed"`
	PayoutsCompleted    int     `json:"payoutsCompleted"`
	PayoutsPending      int     `json:"payoutsPending"`
	PayoutsFailed       int     `json:"payoutsFailed"`
	TotalPayouts        int     `json:"totalPayouts"`
	AveragePayoutAmount float64 `json:"averagePayoutAmount"`
}

// PayoutReportBucket is a count/amount pair for one status
type PayoutReportBucket struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// PayoutReport covers all payouts in a date range
type PayoutReport struct {
	Start        time.Time                     `json:"start"`
	End          time.Time                     `json:"end"`
	TotalPayouts int                           `json:"totalPayouts"`
	TotalAmount  float64                       `json:"totalAmount"`
	ByStatus     map[string]PayoutReportBucket `json:"byStatus"`
	Payouts      []Payout                      `json:"payouts"`
}
