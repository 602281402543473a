package chat

import "context"

// Join moves r into room and hands it the recent backlog, oldest first. The
// backlog goes to the joiner alone, never to existing members. A failing
// history query degrades to an empty backlog; the join itself always
// succeeds.
func (s *Service) Join(ctx context.Context, r Receiver, room string) {
	s.registry.Join(r, room)

	ms, err := s.store.RecentHistory(ctx, room, s.history)
	if err != nil {
		s.log.Error("store.history", "room", room, "err", err)
		ms = nil
	}
	if ms == nil {
		ms = []Message{}
	}
	r.DeliverHistory(ms)
}

// Disconnect releases r's room membership. Must run eagerly on transport
// close so no later fan-out reaches a connection that has left.
func (s *Service) Disconnect(r Receiver) {
	s.registry.Leave(r)
}
