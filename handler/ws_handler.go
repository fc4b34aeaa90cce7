package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/cornellb28/orderbbs-app/middleware"
	"github.com/cornellb28/orderbbs-app/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades admin dashboard connections and feeds them into the
// broadcast hub.
type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// AdminFeed holds the socket open and pushes order events as they happen.
// Incoming frames are drained and ignored; the read loop exists only to
// detect disconnects.
func (h *WSHandler) AdminFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.GetAdmin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		clientID := ident.AdminID
		if clientID == "" {
			clientID = uuid.NewString()
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("ws: upgrade failed")
			return
		}

		h.hub.RegisterAdmin(clientID, conn)
		log.Info().Str("client_id", clientID).Msg("ws: admin connected")

		defer func() {
			h.hub.UnregisterAdmin(clientID)
			log.Info().Str("client_id", clientID).Msg("ws: admin disconnected")
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
