package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub fans out order events to connected admin dashboards. Connections are
// keyed by a client id so a reconnect replaces the stale socket.
type Hub struct {
	mu      sync.RWMutex
	byAdmin map[string]*wsConn
}

func NewHub() *Hub {
	return &Hub{byAdmin: make(map[string]*wsConn)}
}

// wsConn wraps a websocket connection with a write mutex to serialize writes.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (h *Hub) RegisterAdmin(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.byAdmin[clientID]; ok {
		old.conn.Close()
	}
	h.byAdmin[clientID] = &wsConn{conn: conn}
}

func (h *Hub) UnregisterAdmin(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.byAdmin[clientID]; ok {
		c.conn.Close()
		delete(h.byAdmin, clientID)
	}
}

// Broadcast sends a typed event payload to every connected admin.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	conns := make(map[string]*wsConn, len(h.byAdmin))
	for id, c := range h.byAdmin {
		conns[id] = c
	}
	h.mu.RUnlock()

	msg := map[string]any{"event": event, "data": payload}
	for id, wc := range conns {
		wc.mu.Lock()
		err := wc.conn.WriteJSON(msg)
		wc.mu.Unlock()
		if err != nil {
			log.Warn().Str("client_id", id).Str("event", event).Err(err).Msg("ws: admin write failed")
		}
	}
}

// OrderConfirmedPayload is broadcast when a payment webhook confirms an order.
type OrderConfirmedPayload struct {
	OrderID    string `json:"order_id"`
	EventID    string `json:"event_id"`
	Email      string `json:"email"`
	TotalCents int64  `json:"total_cents"`
}
