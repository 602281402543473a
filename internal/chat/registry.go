package chat

import "sync"

// Registry tracks which connections are in which room. A connection belongs
// to at most one room at any instant; joining a new room leaves the old one
// first. State is volatile and rebuilt from nothing on restart, since
// membership is session-scoped.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]map[Receiver]struct{}
	current map[Receiver]string // connection -> its room
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:   map[string]map[Receiver]struct{}{},
		current: map[Receiver]string{},
	}
}

// Join moves r into room, leaving its previous room if it had one.
// The room is created on first join.
func (g *Registry) Join(r Receiver, room string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.current[r]; ok {
		delete(g.rooms[prev], r)
	}
	members := g.rooms[room]
	if members == nil {
		members = map[Receiver]struct{}{}
		g.rooms[room] = members
	}
	members[r] = struct{}{}
	g.current[r] = room
}

// Leave removes r from its current room, if any. Called on disconnect so no
// fan-out after this point can reach r.
func (g *Registry) Leave(r Receiver) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.current[r]
	if !ok {
		return
	}
	delete(g.rooms[room], r)
	delete(g.current, r)
}

// Room returns the room r currently belongs to, if any.
func (g *Registry) Room(r Receiver) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.current[r]
	return room, ok
}

// Members returns a snapshot of the room's member set. Joins and leaves after
// the snapshot do not affect an in-flight fan-out iterating over it.
func (g *Registry) Members(room string) []Receiver {
	g.mu.RLock()
	defer g.mu.RUnlock()

	members := g.rooms[room]
	out := make([]Receiver, 0, len(members))
	for r := range members {
		out = append(out, r)
	}
	return out
}
