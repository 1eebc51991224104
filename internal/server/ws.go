package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"signalgen-go/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced by the gin middleware; the upgrader accepts all origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 15 * time.Second
)

// handleLive upgrades the connection and streams matching samples as JSON
// until the client goes away or the server stops.
func (s *Server) handleLive(c *gin.Context) {
	id := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	subID, samples := s.hub.Subscribe(64)
	defer s.hub.Unsubscribe(subID)

	metrics.WSClients.Inc()
	defer metrics.WSClients.Dec()
	s.log.Info().Str("signal", id).Str("sub", subID).Msg("live stream connected")

	// Reader goroutine: the client never sends data, but reading surfaces
	// close frames and keeps pong handling alive.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(1 << 16)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pings := time.NewTicker(wsPingInterval)
	defer pings.Stop()

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-pings.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case sample, ok := <-samples:
			if !ok {
				return
			}
			if id != "" && sample.ID != id {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(sample); err != nil {
				s.log.Debug().Err(err).Str("sub", subID).Msg("live stream write failed")
				return
			}
		}
	}
}
