package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"restaurant-booking-server/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ModerationFeed streams every newly flagged review to the websocket client.
func (h *Handler) ModerationFeed(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		writeError(w, r, http.StatusServiceUnavailable, "Moderation feed disabled", nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied
		writeLogOnly(r, "Error upgrading connection", err)
		return
	}

	ws.Serve(h.hub, conn)
}
