// Package ws is the websocket transport in front of the chat core. It speaks
// a small JSON event protocol per connection and translates frames into core
// calls; all room and history semantics live in internal/chat.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"log/slog"
	"nhooyr.io/websocket"

	"github.com/Ionution132/chat-backend/internal/chat"
)

// Event is the wire envelope. Data is the event-specific payload:
// a string for "join room" and "error-message", a message object for
// "chat message", a message array for "chat history".
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Conn wraps one websocket connection. It is the chat.Receiver handed to the
// core: deliveries are queued on a buffered channel drained by WriteLoop.
type Conn struct {
	id  string
	ws  *websocket.Conn
	log *slog.Logger
	out chan []byte
}

// Accept upgrades HTTP to websocket (allow all origins)
func Accept(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  []string{"*"},
		CompressionMode: websocket.CompressionDisabled,
	})
}

// NewConn wraps a freshly accepted websocket connection.
func NewConn(ws *websocket.Conn, log *slog.Logger) *Conn {
	return &Conn{
		id:  uuid.NewString(),
		ws:  ws,
		log: log,
		out: make(chan []byte, 256),
	}
}

// ID identifies this connection in logs.
func (c *Conn) ID() string { return c.id }

// Read blocks until the next event frame arrives. Returns false when the
// connection is gone or the frame is not valid JSON for the envelope.
func (c *Conn) Read(ctx context.Context) (Event, bool) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return Event{}, false
		}
		if typ != websocket.MessageText && typ != websocket.MessageBinary {
			continue
		}
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.log.Debug("ws.badframe", "conn", c.id, "err", err)
			continue
		}
		return ev, true
	}
}

// DeliverMessage queues a broadcast message for this connection.
func (c *Conn) DeliverMessage(m chat.Message) { c.push("chat message", m) }

// DeliverHistory queues the join-time backlog.
func (c *Conn) DeliverHistory(ms []chat.Message) { c.push("chat history", ms) }

// DeliverError queues a rejection notice.
func (c *Conn) DeliverError(reason string) { c.push("error-message", reason) }

// push encodes an event and queues it without blocking. A connection whose
// buffer is full loses the frame rather than stalling the room's fan-out.
func (c *Conn) push(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("ws.encode", "conn", c.id, "event", event, "err", err)
		return
	}
	raw, _ := json.Marshal(Event{Event: event, Data: data})
	select {
	case c.out <- raw:
	default:
		c.log.Warn("ws.dropped", "conn", c.id, "event", event)
	}
}

// WriteLoop sends outbound messages + periodic pings
// Exits when ctx is cancelled
func (c *Conn) WriteLoop(ctx context.Context) {
	t := time.NewTicker(20 * time.Second)
	defer t.Stop()

	for {
		select {
		case b := <-c.out:
			_ = c.ws.Write(ctx, websocket.MessageText, b)
		case <-t.C:
			_ = c.ws.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Close closes the WS connection normally
func (c *Conn) Close() error { return c.ws.Close(websocket.StatusNormalClosure, "bye") }
