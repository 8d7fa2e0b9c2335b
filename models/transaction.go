package models

import "time"

// Transaction statuses. A transaction is appended as "earned" and only ever
// flips to "paid", via the payout processor.
const (
	TransactionEarned = "earned"
	TransactionPaid   = "paid"
)

// Transaction is one append-only commission ledger entry
type Transaction struct {
	ID            string     `json:"id" bson:"_id"`
	PartnerID     string     `json:"partnerId" bson:"partnerId"`
	BookingID     string     `json:"bookingId" bson:"bookingId"`
	BookingType   string     `json:"bookingType" bson:"bookingType"`
	BookingAmount float64    `json:"bookingAmount" bson:"bookingAmount"`
	BaseRate      float64    `json:"baseRate" bson:"baseRate"`
	EffectiveRate float64    `json:"effectiveRate" bson:"effectiveRate"`
	Commission    float64    `json:"commission" bson:"commission"`
	Status        string     `json:"status" bson:"status"`
	RecordedAt    time.Time  `json:"recordedAt" bson:"recordedAt"`
	PaidOutAt     *time.Time `json:"paidOutAt,omitempty" bson:"paidOutAt,omitempty"`
	PayoutID      string     `json:"payoutId,omitempty" bson:"payoutId,omitempty"`
}

// BookingConfirmation is the payload the booking flow posts when a booking is
// confirmed. OccupancyRate above 80 qualifies the booking for the plan's bonus
// commission.
type BookingConfirmation struct {
	BookingID     string  `json:"bookingId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Type          string  `json:"type,omitempty"`
	Status        string  `json:"status,omitempty"`
	OccupancyRate float64 `json:"occupancyRate,omitempty"`
}

// EarningsSummary is the partner-facing rollup of lifetime and current-month
// commission earnings
type EarningsSummary struct {
	PartnerID             string  `json:"partnerId"`
	TotalEarned           float64 `json:"totalEarned"`
	ThisMonthEarned       float64 `json:"thisMonthEarned"`
	ThisMonthTransactions int     `json:"thisMonthTransactions"`
	SubscriptionCost      float64 `json:"subscriptionCost"`
	NetEarnings           float64 `json:"netEarnings"`
	CommissionRate        float64 `json:"commissionRate"`
	Tier                  string  `json:"tier"`
}

// BookingTypeBreakdown is one booking-type bucket of a monthly report
type BookingTypeBreakdown struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Amount     float64 `json:"amount"`
	Commission float64 `json:"commission"`
	Average    float64 `json:"average"`
}

// MonthlyEarningsReport buckets a partner's ledger by calendar month
type MonthlyEarningsReport struct {
	Month                 string                 `json:"month"`
	Year                  int                    `json:"year"`
	MonthName             string                 `json:"monthName"`
	Transactions          int                    `json:"transactions"`
	TotalBookingAmount    float64                `json:"totalBookingAmount"`
	TotalCommission       float64                `json:"totalCommission"`
	ByType                []BookingTypeBreakdown `json:"byType"`
	SubscriptionCost      float64                `json:"subscriptionCost"`
	NetEarnings           float64                `json:"netEarnings"`
	AverageCommissionRate float64                `json:"averageCommissionRate"`
}

// YearToDateEarnings aggregates the current calendar year
type YearToDateEarnings struct {
	Year                   int     `json:"year"`
	Transactions           int     `json:"transactions"`
	TotalBookingAmount     float64 `json:"totalBookingAmount"`
	TotalCommission        float64 `json:"totalCommission"`
	TotalSubscriptionCost  float64 `json:"totalSubscriptionCost"`
	NetEarnings            float64 `json:"netEarnings"`
	AverageMonthlyEarnings float64 `json:"averageMonthlyEarnings"`
	AverageBookingValue    float64 `json:"averageBookingValue"`
	AverageCommissionRate  float64 `json:"averageCommissionRate"`
}

// PartnerCommissionTotal is one row of the admin commission leaderboard
type PartnerCommissionTotal struct {
	PartnerID                   string  `json:"partnerId"`
	Transactions                int     `json:"transactions"`
	TotalCommission             float64 `json:"totalCommission"`
	TotalBookingAmount          float64 `json:"totalBookingAmount"`
	AverageCommissionPerBooking float64 `json:"averageCommissionPerBooking"`
}

// CommissionAnalytics is the cross-partner commission report
type CommissionAnalytics struct {
	TotalCommission             float64                  `json:"totalCommission"`
	TotalBookings               int                      `json:"totalBookings"`
	TotalBookingAmount          float64                  `json:"totalBookingAmount"`
	AverageCommissionPerBooking float64                  `json:"averageCommissionPerBooking"`
	ActivePartners              int                      `json:"activePartners"`
	TopPartners                 []PartnerCommissionTotal `json:"topPartners"`
}
