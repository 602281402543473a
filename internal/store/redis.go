package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"log/slog"

	"github.com/Ionution132/chat-backend/internal/app"
	"github.com/Ionution132/chat-backend/internal/chat"
)

// Redis keeps each room's log in a redis list. RPUSH preserves arrival order
// and list position is the sequence marker.
type Redis struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewRedis connects to redis and verifies connectivity.
func NewRedis(ctx context.Context, cfg app.Config, log *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{rdb: rdb, log: log}, nil
}

// Close shuts down the redis connection.
func (s *Redis) Close() { _ = s.rdb.Close() }

// Append pushes the JSON-encoded message onto the room's list.
func (s *Redis) Append(ctx context.Context, m chat.Message) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	if err := s.rdb.RPush(ctx, roomKey(m.Room), raw).Err(); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// RecentHistory reads the list tail, which is already oldest-first.
func (s *Redis) RecentHistory(ctx context.Context, room string, limit int) ([]chat.Message, error) {
	raws, err := s.rdb.LRange(ctx, roomKey(room), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	out := make([]chat.Message, 0, len(raws))
	for _, raw := range raws {
		var m chat.Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			s.log.Warn("store.history.badrecord", "room", room, "err", err)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// roomKey namespaces one room's message list.
func roomKey(room string) string { return "room:" + room + ":messages" }
