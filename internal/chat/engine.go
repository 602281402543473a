package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Ionution132/chat-backend/pkg/metrics"
)

// Store is what the engine needs from persistence: ordered appends and a
// bounded recent-history query. internal/store provides the backends.
type Store interface {
	Append(ctx context.Context, m Message) error
	RecentHistory(ctx context.Context, room string, limit int) ([]Message, error)
}

// Service runs the message pipeline: resolve the target room, check policy,
// persist, then fan out to the room's members. Each room is owned by a single
// worker goroutine, so messages for one room are persisted and delivered in
// the order they were accepted, while rooms never block each other.
type Service struct {
	log      *slog.Logger
	registry *Registry
	store    Store
	policies *PolicyTable
	history  int // backlog size served on join

	mu     sync.Mutex
	ctx    context.Context
	queues map[string]chan Message // one send queue per room
}

// NewService wires the engine together. historyLimit bounds the backlog
// delivered on join and is fixed for the process lifetime.
func NewService(log *slog.Logger, registry *Registry, store Store, policies *PolicyTable, historyLimit int) *Service {
	return &Service{
		log:      log,
		registry: registry,
		store:    store,
		policies: policies,
		history:  historyLimit,
		ctx:      context.Background(),
		queues:   map[string]chan Message{},
	}
}

// Run parks until ctx is cancelled. Room workers started after this point
// stop with ctx.
func (s *Service) Run(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	<-ctx.Done()
}

// Send pushes one inbound message through the pipeline on behalf of sender.
// The target room is the message's explicit room field, else the sender's
// current room; with neither there is nothing to act on and the message is
// dropped. Policy rejection notifies the sender only. Acceptance order on the
// room queue is delivery order for that room.
func (s *Service) Send(sender Receiver, m Message) {
	room := m.Room
	if room == "" {
		current, ok := s.registry.Room(sender)
		if !ok {
			s.log.Debug("chat.drop.noroom", "username", m.Username)
			return
		}
		room = current
	}
	m.Room = room

	if !s.policies.Accept(room, m.Text) {
		metrics.MessagesRejected.Inc()
		s.log.Info("chat.rejected", "room", room, "username", m.Username)
		sender.DeliverError("your message was blocked by the rules of room " + room)
		return
	}

	s.roomQueue(room) <- m
}

// roomQueue returns the room's send queue, starting its worker on first use.
// Rooms are never torn down; an empty room stays addressable.
func (s *Service) roomQueue(room string) chan Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queues[room]
	if q == nil {
		q = make(chan Message, 256)
		s.queues[room] = q
		go s.roomWorker(s.ctx, room, q)
	}
	return q
}

// roomWorker persists and fans out messages for one room, one at a time.
func (s *Service) roomWorker(ctx context.Context, room string, q chan Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-q:
			s.deliver(ctx, room, m)
		}
	}
}

// deliver is the Persisting -> Delivered leg. A failed append drops the
// message with only a server-side log; nothing reaches the room and the
// sender is not told, matching long-standing behavior.
func (s *Service) deliver(ctx context.Context, room string, m Message) {
	if err := s.store.Append(ctx, m); err != nil {
		metrics.PersistFailures.Inc()
		s.log.Error("store.append", "room", room, "err", err)
		return
	}

	members := s.registry.Members(room)
	for _, r := range members {
		r.DeliverMessage(m)
	}
	metrics.MessagesDelivered.Add(float64(len(members)))
}
