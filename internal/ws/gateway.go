package ws

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/Ionution132/chat-backend/internal/chat"
	"github.com/Ionution132/chat-backend/pkg/metrics"
)

// Gateway accepts websocket connections and drives the chat core with their
// events.
type Gateway struct {
	log *slog.Logger
	svc *chat.Service
}

// NewGateway sets up the gateway in front of the chat service.
func NewGateway(log *slog.Logger, svc *chat.Service) *Gateway {
	return &Gateway{log: log, svc: svc}
}

// ServeWS handles a new /ws connection for its whole lifetime.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sock, err := Accept(w, r)
	if err != nil {
		g.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(sock, g.log)
	metrics.ActiveConnections.Inc()
	g.log.Info("ws.connected", "conn", c.ID())

	// Outbound writer
	go c.WriteLoop(ctx)

	// Inbound reader; a connection starts idle, in no room
	for {
		ev, ok := c.Read(ctx)
		if !ok {
			break
		}

		switch ev.Event {
		case "join room":
			var room string
			if err := json.Unmarshal(ev.Data, &room); err != nil || room == "" {
				g.log.Debug("ws.badjoin", "conn", c.ID())
				continue
			}
			g.svc.Join(ctx, c, room)
			g.log.Info("room.join", "conn", c.ID(), "room", room)

		case "chat message":
			var m chat.Message
			if err := json.Unmarshal(ev.Data, &m); err != nil {
				g.log.Debug("ws.badmessage", "conn", c.ID())
				continue
			}
			g.svc.Send(c, m)

		default:
			g.log.Debug("ws.unknown", "conn", c.ID(), "event", ev.Event)
		}
	}

	// Release membership before the socket is torn down so no fan-out can
	// still reach this connection.
	g.svc.Disconnect(c)
	metrics.ActiveConnections.Dec()
	g.log.Info("ws.disconnected", "conn", c.ID())
	_ = c.Close()
}
