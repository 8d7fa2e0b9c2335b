package services

import (
	"fmt"
	"log"

	"github.com/colleco/partner_backend/models"
	"github.com/colleco/partner_backend/utils"
	"github.com/colleco/partner_backend/websocket"
)

// NotificationService fans partner events out to websocket sessions and
// email. Partner email addresses live outside the engine; the lookup is
// injected and may be nil, in which case emails are skipped.
type NotificationService struct {
	hub         *websocket.Hub
	emailLookup func(partnerID string) string
}

func NewNotificationService(hub *websocket.Hub, emailLookup func(partnerID string) string) *NotificationService {
	return &NotificationService{hub: hub, emailLookup: emailLookup}
}

// NotifyPayoutStatus pushes the payout state change to the partner's
// dashboard and emails completed payouts. Delivery failures are logged;
// notifications never block settlement.
func (n *NotificationService) NotifyPayoutStatus(partnerID string, payout models.Payout) {
	if n == nil {
		return
	}

	if err := n.hub.NotifyPayoutStatus(partnerID, payout); err != nil {
		log.Printf("Failed to push payout notification to partner %s: %v", partnerID, err)
	}

	if payout.Status != models.PayoutCompleted || n.emailLookup == nil {
		return
	}
	email := n.emailLookup(partnerID)
	if email == "" {
		return
	}

	subject := "Your payout has been completed"
	body := fmt.Sprintf(
		"Dear partner,\n\nYour payout of R%.2f has been completed and sent to %s (%s).\nReference: %s\n\nBest regards,\nCollEco Travel",
		payout.Amount, payout.PayoutMethod.BankName, payout.PayoutMethod.AccountHolder, payout.Reference,
	)
	if err := utils.SendEmail(email, subject, body); err != nil {
		log.Printf("Failed to email payout confirmation to partner %s: %v", partnerID, err)
	}
}

// NotifyTierUpgrade pushes a tier upgrade event to the partner's dashboard
func (n *NotificationService) NotifyTierUpgrade(partnerID, previousTier, newTier string) {
	if n == nil {
		return
	}

	data := map[string]string{
		"previousTier": previousTier,
		"newTier":      newTier,
	}
	if err := n.hub.NotifyTierUpgrade(partnerID, data); err != nil {
		log.Printf("Failed to push tier upgrade notification to partner %s: %v", partnerID, err)
	}
}
