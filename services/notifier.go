package services

import "github.com/colleco/partner_backend/models"

// Notifier pushes partner-facing events out of the engine. Implementations
// fan out to websocket sessions and email; a nil notifier is a no-op.
type Notifier interface {
	NotifyPayoutStatus(partnerID string, payout models.Payout)
	NotifyTierUpgrade(partnerID, previousTier, newTier string)
}
