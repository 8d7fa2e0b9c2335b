package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Notification types pushed to partner dashboards
const (
	NotificationTypePayoutStatus = "payout_status"
	NotificationTypeTierUpgrade  = "tier_upgrade"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	PartnerID string      `json:"partnerId,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	PartnerID string
	Conn      *websocket.Conn
}

// Hub maintains the set of active partner clients and pushes notifications
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.PartnerID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.PartnerID]; ok && current == client {
				delete(h.clients, client.PartnerID)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToPartner sends a notification to a specific partner
func (h *Hub) SendToPartner(partnerID string, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[partnerID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("partner not connected")
	}

	return client.Conn.WriteJSON(notification)
}

// NotifyPayoutStatus pushes a payout status change to the partner
func (h *Hub) NotifyPayoutStatus(partnerID string, payoutData interface{}) error {
	notification := Notification{
		Type:      NotificationTypePayoutStatus,
		Message:   "Your payout status has been updated",
		Data:      payoutData,
		PartnerID: partnerID,
	}

	return h.SendToPartner(partnerID, notification)
}

// NotifyTierUpgrade congratulates the partner on a tier upgrade
func (h *Hub) NotifyTierUpgrade(partnerID string, tierData interface{}) error {
	notification := Notification{
		Type:      NotificationTypeTierUpgrade,
		Message:   "Congratulations! Your partner tier has been upgraded",
		Data:      tierData,
		PartnerID: partnerID,
	}

	return h.SendToPartner(partnerID, notification)
}
