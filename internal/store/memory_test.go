package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Ionution132/chat-backend/internal/chat"
)

func TestMemoryAppendThenHistory(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	m := chat.Message{Room: "r", Username: "ana", Text: "hello"}
	if err := s.Append(ctx, m); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := s.RecentHistory(ctx, "r", 100)
	if err != nil {
		t.Fatalf("RecentHistory() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	if got[0].Text != "hello" {
		t.Errorf("expected text %q, got %q", "hello", got[0].Text)
	}
}

func TestMemoryHistoryBound(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		m := chat.Message{Room: "busy", Username: "bot", Text: fmt.Sprintf("msg-%03d", i)}
		if err := s.Append(ctx, m); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := s.RecentHistory(ctx, "busy", 100)
	if err != nil {
		t.Fatalf("RecentHistory() error = %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("expected exactly 100 messages, got %d", len(got))
	}
	// Most recent 100, oldest first: msg-050 .. msg-149.
	if got[0].Text != "msg-050" {
		t.Errorf("expected first %q, got %q", "msg-050", got[0].Text)
	}
	if got[99].Text != "msg-149" {
		t.Errorf("expected last %q, got %q", "msg-149", got[99].Text)
	}
}

func TestMemoryUnknownRoomIsEmptyNotError(t *testing.T) {
	s := NewMemory()

	got, err := s.RecentHistory(context.Background(), "nowhere", 100)
	if err != nil {
		t.Fatalf("RecentHistory() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestMemoryConcurrentAppendsAcrossRooms(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	const perRoom = 100
	rooms := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for _, room := range rooms {
		wg.Add(1)
		go func(room string) {
			defer wg.Done()
			for i := 0; i < perRoom; i++ {
				m := chat.Message{Room: room, Username: room, Text: fmt.Sprintf("%s-%03d", room, i)}
				if err := s.Append(ctx, m); err != nil {
					t.Errorf("Append(%s) error = %v", room, err)
					return
				}
			}
		}(room)
	}
	wg.Wait()

	// Within each room, the single-writer order is intact and nothing leaked
	// across rooms.
	for _, room := range rooms {
		got, err := s.RecentHistory(ctx, room, perRoom)
		if err != nil {
			t.Fatalf("RecentHistory(%s) error = %v", room, err)
		}
		if len(got) != perRoom {
			t.Fatalf("room %s: expected %d messages, got %d", room, perRoom, len(got))
		}
		for i, m := range got {
			want := fmt.Sprintf("%s-%03d", room, i)
			if m.Text != want {
				t.Fatalf("room %s: index %d: expected %q, got %q", room, i, want, m.Text)
			}
		}
	}
}

func TestMemoryHistoryCopyIsIndependent(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_ = s.Append(ctx, chat.Message{Room: "r", Username: "u", Text: "original"})
	got, _ := s.RecentHistory(ctx, "r", 10)
	got[0].Text = "mutated"

	again, _ := s.RecentHistory(ctx, "r", 10)
	if again[0].Text != "original" {
		t.Errorf("history copy leaked back into the store")
	}
}
