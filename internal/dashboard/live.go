package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type string `json:"type"` // "click"
	Ref  string `json:"ref"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type      string `json:"type"` // "paint" or "error"
	SessionID string `json:"session_id"`
	HTML      string `json:"html,omitempty"`
	Content   string `json:"content,omitempty"`
}

// liveConn serializes writes to one connection.
type liveConn struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	session *Session
}

// paint sends the current page. The HTML is taken under the write lock, so
// the last message written always carries the newest page.
func (c *liveConn) paint() {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.conn.WriteJSON(serverMessage{
		Type:      "paint",
		SessionID: c.session.ID,
		HTML:      c.session.Document().HTML(),
	})
	if err != nil {
		log.Printf("dashboard: websocket write: %v", err)
	}
}

func (c *liveConn) sendError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.conn.WriteJSON(serverMessage{
		Type:      "error",
		SessionID: c.session.ID,
		Content:   message,
	})
	if err != nil {
		log.Printf("dashboard: websocket write error: %v", err)
	}
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Loads outlive the upgrade request but not the connection.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	session, err := NewSession(ctx, d.opts)
	if err != nil {
		log.Printf("dashboard: creating session: %v", err)
		return
	}
	lc := &liveConn{conn: conn, session: session}

	if err := session.Start(); err != nil {
		log.Printf("dashboard: session %s: initial render: %v", session.ID, err)
		return
	}
	lc.paint()
	session.Document().OnChange(lc.paint)
	defer session.Document().OnChange(nil)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("dashboard: websocket read: %v", err)
			}
			return
		}

		var m clientMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			lc.sendError("invalid message format")
			continue
		}

		switch m.Type {
		case "click":
			if !session.Click(m.Ref) {
				lc.sendError("no handler for " + m.Ref)
			}
		default:
			lc.sendError("unknown message type: " + m.Type)
		}
	}
}
