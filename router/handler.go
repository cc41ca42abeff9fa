package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	CheckOrigin:      func(r *http.Request) bool { return true },
	HandshakeTimeout: time.Duration(time.Second * 5),
}

const eventWriteTimeout = 5 * time.Second

// @Summary      Store events
// @Description  Websocket stream of registry and settings notifications as JSON
// @Tags         events
// @Router       /events [get]
func (h *Handler) Events(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.LogError("events_websocket", fmt.Sprintf("WebSocket upgrade error - %s", err))
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Broadcaster.Subscribe()
	defer unsubscribe()

	// the client never sends anything, reading only notices it going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				h.Logger.LogDebug("events_websocket", fmt.Sprintf("Could not write event, closing - %s", err))
				return
			}
		}
	}
}
