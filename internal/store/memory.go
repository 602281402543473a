package store

import (
	"context"
	"sync"

	"github.com/Ionution132/chat-backend/internal/chat"
)

// Memory keeps every room's log in process memory. The default backend for
// development and tests; nothing survives a restart.
type Memory struct {
	mu   sync.RWMutex
	logs map[string]*roomLog // one append log per room
}

type roomLog struct {
	mu   sync.Mutex
	msgs []chat.Message
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{logs: map[string]*roomLog{}}
}

// roomLog returns the room's log, creating it on first touch.
func (s *Memory) roomLog(room string) *roomLog {
	s.mu.RLock()
	l := s.logs[room]
	s.mu.RUnlock()
	if l != nil {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l = s.logs[room]; l == nil {
		l = &roomLog{}
		s.logs[room] = l
	}
	return l
}

// Append adds m to its room's log. Each room has its own lock, so appends to
// different rooms proceed in parallel.
func (s *Memory) Append(_ context.Context, m chat.Message) error {
	l := s.roomLog(m.Room)
	l.mu.Lock()
	l.msgs = append(l.msgs, m)
	l.mu.Unlock()
	return nil
}

// RecentHistory copies out the newest limit messages, oldest first.
func (s *Memory) RecentHistory(_ context.Context, room string, limit int) ([]chat.Message, error) {
	s.mu.RLock()
	l := s.logs[room]
	s.mu.RUnlock()
	if l == nil {
		return []chat.Message{}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if len(l.msgs) > limit {
		start = len(l.msgs) - limit
	}
	out := make([]chat.Message, len(l.msgs)-start)
	copy(out, l.msgs[start:])
	return out, nil
}
