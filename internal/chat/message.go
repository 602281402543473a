// Package chat holds the room membership and message distribution core:
// who is in which room, which messages are accepted, and how an accepted
// message reaches every member of its room.
package chat

// Message is one chat message as exchanged with clients. Time and Date are
// client-supplied display strings; the server never parses them. Image is an
// opaque reference (usually an /uploads/ URL) embedded verbatim.
// Messages are immutable once created.
type Message struct {
	Room     string `json:"room,omitempty"`
	Username string `json:"username"`
	Text     string `json:"text"`
	Image    string `json:"image,omitempty"`
	Time     string `json:"time"`
	Date     string `json:"date"`
}

// Receiver is the delivery side of a connection. The transport layer owns the
// actual socket; the core only ever pushes through this interface.
type Receiver interface {
	// DeliverMessage pushes one broadcast message.
	DeliverMessage(m Message)
	// DeliverHistory pushes the join-time backlog, oldest first.
	DeliverHistory(ms []Message)
	// DeliverError pushes a human-readable rejection reason.
	DeliverError(reason string)
}
