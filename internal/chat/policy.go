package chat

import "regexp"

// Policy decides whether a message text is acceptable for a room.
type Policy interface {
	Accept(text string) bool
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc func(text string) bool

// Accept calls f.
func (f PolicyFunc) Accept(text string) bool { return f(text) }

// linkPattern matches a scheme-prefixed URL, a www.-prefixed token, or a bare
// domain-like token (labels, a dot, a 2+ letter suffix) with an optional
// path, anywhere in the text. Deliberately heuristic; it can flag ordinary
// prose containing a domain-like token, and existing rooms rely on exactly
// this behavior.
var linkPattern = regexp.MustCompile(`(?i)(https?://[^\s]+|www\.[^\s]+|\b[a-z0-9-]+(\.[a-z0-9-]+)*\.[a-z]{2,}\b(/[^\s]*)?)`)

// NoLinks rejects any text containing something that looks like a link.
var NoLinks Policy = PolicyFunc(func(text string) bool {
	return !linkPattern.MatchString(text)
})

// PolicyTable maps room names to their policy. Rooms without an entry accept
// everything.
type PolicyTable struct {
	byRoom map[string]Policy
}

// NewPolicyTable creates a table with no per-room restrictions.
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{byRoom: map[string]Policy{}}
}

// Restrict installs p as the policy for room, replacing any previous one.
func (t *PolicyTable) Restrict(room string, p Policy) {
	t.byRoom[room] = p
}

// Accept runs the room's policy against text. Default is to accept.
func (t *PolicyTable) Accept(room, text string) bool {
	if p, ok := t.byRoom[room]; ok {
		return p.Accept(text)
	}
	return true
}
