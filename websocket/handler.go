package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the connection and registers the partner with the
// hub. The partner identity comes from the authenticated request.
func HandleWebSocket(c echo.Context, hub *Hub, partnerID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		PartnerID: partnerID,
		Conn:      conn,
	}

	hub.register <- client

	conn.WriteJSON(Notification{
		Type:      "connected",
		Message:   "WebSocket connection established",
		PartnerID: partnerID,
	})

	// Drain the connection until the client disconnects
	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
