package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/auth"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/pkg/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
}

// ViewerHandler upgrades dashboard connections and attaches them to the hub.
// The first frame must be {"type":"auth","token":...} within 5 seconds.
func ViewerHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("ws_upgrade_failed", "Failed to upgrade connection", requestID, "", err.Error())
			return
		}
		defer conn.Close()

		logger.Info("ws_viewer_connected", "Viewer connected", requestID, "")

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Error("ws_auth_read_failed", "Failed to read auth message", requestID, "", err.Error())
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"auth_timeout"}`))
			return
		}

		var incoming authMessage
		_ = json.Unmarshal(msg, &incoming)

		if incoming.Type != "auth" {
			logger.Warn("ws_invalid_auth_message", "Invalid auth message type", requestID, "", "")
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid_auth_message"}`))
			return
		}

		if _, err := auth.ValidateToken(incoming.Token); err != nil {
			logger.Warn("ws_invalid_token", "Viewer token invalid", requestID, "", err.Error())
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid_token"}`))
			return
		}

		conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"authenticated"}`))
		logger.Info("ws_viewer_authenticated", "Viewer successfully authenticated", requestID, "")

		id, err := uuid.NewUUID()
		if err != nil {
			logger.Error("ws_client_id_failed", "Failed to generate client id", requestID, "", err.Error())
			return
		}

		client := &Client{
			ID:            id,
			Conn:          conn,
			Send:          make(chan []byte, 64),
			Authenticated: true,
			LastPong:      time.Now(),
		}
		hub.AddClient(client)
		defer hub.RemoveClient(client.ID)

		go writePump(client, requestID)

		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(appData string) error {
			client.LastPong = time.Now()
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		// Viewers only listen; drain until the connection drops.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("ws_viewer_disconnected", "Viewer connection closed", requestID, "")
				return
			}
		}
	}
}

func writePump(c *Client, requestID string) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Error("ws_write_failed", "Failed to write to viewer", requestID, "", err.Error())
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Error("ws_ping_failed", "Ping to viewer failed", requestID, "", err.Error())
				return
			}
		}
	}
}
